package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ImportTaskStatus string

const (
	ImportQueued     ImportTaskStatus = "queued"
	ImportProcessing ImportTaskStatus = "processing"
	ImportCompleted  ImportTaskStatus = "completed"
	ImportFailed     ImportTaskStatus = "failed"
)

// MenuImportTask tracks a spreadsheet import into a restaurant's menu.
type MenuImportTask struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID  primitive.ObjectID `bson:"restaurant_id" json:"restaurantID"`
	SpreadsheetID string             `bson:"spreadsheet_id" json:"spreadsheetID"`
	Status        ImportTaskStatus   `bson:"status" json:"status"`
	ItemsImported int                `bson:"items_imported" json:"itemsImported"`
	ErrorMessage  string             `bson:"error_message,omitempty" json:"errorMessage,omitempty"`
	RetryCount    int                `bson:"retry_count" json:"retryCount"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
