package model

const (
	MessageRoleSystem    = "system"
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message rows are append-only; nothing ever updates one in place.
type Message struct {
	ID             string `gorm:"type:varchar(64);primaryKey" json:"id"`
	UserId         string `gorm:"type:varchar(64);index:idx_user_id_conversation_id_created_at" json:"user_id"`
	ConversationId string `gorm:"type:varchar(64);index:idx_user_id_conversation_id_created_at" json:"conversation_id"`
	Role           string `gorm:"type:varchar(64)" json:"role"`
	Content        string `gorm:"type:text" json:"content"`
	CreatedAt      string `gorm:"type:varchar(64);index:idx_user_id_conversation_id_created_at" json:"created_at"`
}
