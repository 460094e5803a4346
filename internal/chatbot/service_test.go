package chatbot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/maeva/realestate/internal/chatbot"
	"github.com/maeva/realestate/internal/models"
	"github.com/maeva/realestate/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestChatLogsExchange(t *testing.T) {
	db := testutils.TestDB(t)
	svc := chatbot.NewService(db, testutils.EchoResponder{Answer: "We have several houses in Luanda."})

	answer := svc.Chat(context.Background(), "Maria", "+244 900 000 000", "Do you have houses for sale?")
	assert.Equal(t, "We have several houses in Luanda.", answer)

	var convs []models.ChatbotConversation
	assert.NoError(t, db.Find(&convs).Error)
	assert.Len(t, convs, 1)
	assert.Equal(t, "Maria", convs[0].VisitorName)
	assert.Equal(t, "Do you have houses for sale?", convs[0].Message)
	assert.Equal(t, answer, convs[0].BotResponse)
}

func TestChatFallsBackOnError(t *testing.T) {
	db := testutils.TestDB(t)
	svc := chatbot.NewService(db, testutils.EchoResponder{Err: errors.New("api down")})

	answer := svc.Chat(context.Background(), "", "", "Olá")
	assert.Equal(t, chatbot.FallbackMessage, answer)

	// The degraded exchange is still logged.
	var convs []models.ChatbotConversation
	assert.NoError(t, db.Find(&convs).Error)
	assert.Len(t, convs, 1)
	assert.Equal(t, chatbot.FallbackMessage, convs[0].BotResponse)
}

func TestChatFallsBackOnEmptyAnswer(t *testing.T) {
	db := testutils.TestDB(t)
	svc := chatbot.NewService(db, testutils.EchoResponder{Answer: ""})

	answer := svc.Chat(context.Background(), "", "", "Olá")
	assert.Equal(t, chatbot.FallbackMessage, answer)
}

func TestConversationsNewestFirst(t *testing.T) {
	db := testutils.TestDB(t)
	svc := chatbot.NewService(db, testutils.EchoResponder{Answer: "ok"})

	svc.Chat(context.Background(), "A", "", "first")
	svc.Chat(context.Background(), "B", "", "second")

	convs, err := svc.Conversations()
	assert.NoError(t, err)
	assert.Len(t, convs, 2)
}
