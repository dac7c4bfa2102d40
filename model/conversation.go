package model

// DefaultConversationTitle is used when a conversation is created without a
// usable title, including the implicit creation on a first chat turn.
const DefaultConversationTitle = "New conversation"

type Conversation struct {
	ID        string `gorm:"type:varchar(64);primaryKey" json:"id"`
	UserId    string `gorm:"type:varchar(64);index" json:"user_id"`
	Title     string `gorm:"type:varchar(255)" json:"title"`
	CreatedAt string `gorm:"type:varchar(64)" json:"created_at"`
	UpdatedAt string `gorm:"type:varchar(64)" json:"updated_at"`
}
