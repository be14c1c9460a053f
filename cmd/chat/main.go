package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/askwiki/gateway/chat"
	"github.com/askwiki/gateway/chat/tui"
	"github.com/askwiki/gateway/cmd"
)

func main() {
	config := cmd.GetConfigFromEnvironment()
	if config.GatewayURL == nil {
		log.Fatalln(config.Validate())
	}

	logger, closeLog := chatLogger(config)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := tui.New(
		&chat.HTTPAsker{
			BaseURL: config.GatewayURL,
			Path:    config.AskPath,
		},
		logger,
	)

	logger.Printf("Asking questions at %s", config.GatewayURL)

	if err := app.Run(ctx); err != nil {
		log.Fatalln(err)
	}
}

// chatLogger returns the logger used by the chat client. Log output must not
// be written to the terminal, as it would corrupt the user interface.
func chatLogger(config *cmd.Config) (*log.Logger, func()) {
	if config.ChatLogFile == "" {
		return log.New(io.Discard, "", 0), func() {}
	}

	file, err := os.OpenFile(config.ChatLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalln(err)
	}

	return log.New(file, "", log.LstdFlags), func() { file.Close() }
}
