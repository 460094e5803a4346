package models

import "time"

// ChatbotConversation is an append-only log of chat-widget exchanges.
type ChatbotConversation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VisitorName string    `gorm:"size:100" json:"visitor_name"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Message     string    `gorm:"type:text" json:"message"`
	BotResponse string    `gorm:"type:text" json:"bot_response"`
	CreatedAt   time.Time `json:"created_at"`
}
