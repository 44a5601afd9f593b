package bot

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/avrek/wb-radar/test/mocks"
)

func TestStart(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Start").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Start()

	mockBot.AssertExpectations(t)
}

func TestStop(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Stop").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Stop()

	mockBot.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)

	mockBot.On("Handle", "/start", mock.AnythingOfType("telebot.HandlerFunc")).Once()
	mockBot.On("Handle", "/compare", mock.AnythingOfType("telebot.HandlerFunc")).Once()
	mockBot.On("Handle", "/history", mock.AnythingOfType("telebot.HandlerFunc")).Once()
	mockBot.On("Handle", "/stats", mock.AnythingOfType("telebot.HandlerFunc")).Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.registerRoutes()

	mockBot.AssertExpectations(t)
}
