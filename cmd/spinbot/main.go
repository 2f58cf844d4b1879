// Spin Bot - interactive terminal client
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spinfactor/spinbot/internal/client"
	"github.com/spinfactor/spinbot/internal/domain"
	"github.com/spinfactor/spinbot/internal/session"
)

const greeting = "Ciao 👋 Sono Spin Bot. Scegli una sezione con /sezione <id> o scrivi una domanda."

func main() {
	// Keep the chat readable: structured logs go to stderr, warnings up.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	apiURL := getEnv("SPINBOT_API_URL", "http://localhost:4000")
	dataPath := getEnv("SPINBOT_DATA_PATH", "./data/spinbot.db")

	store, err := session.NewSQLite(dataPath)
	if err != nil {
		slog.Error("Failed to open profile store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctrl := session.NewController(client.New(apiURL), store)
	ctx := context.Background()

	fmt.Println(greeting)
	fmt.Println("Sezioni: siamo, facciamo, diciamo, organizziamo, tiberio, human-data, contatti")
	fmt.Println("Comandi: /sezione <id>, /contatti <nome>|<email>|<messaggio>, /esci")
	fmt.Println()

	printThread(ctrl.Session(), ctrl.Session().ActiveThreadKey())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/esci":
			return
		case strings.HasPrefix(line, "/sezione "):
			id := strings.TrimSpace(strings.TrimPrefix(line, "/sezione "))
			selectSection(ctx, ctrl, id)
		case strings.HasPrefix(line, "/contatti "):
			submitContact(ctx, ctrl, strings.TrimPrefix(line, "/contatti "))
		default:
			ctrl.SendQuestion(ctx, line)
			printThread(ctrl.Session(), lastThreadKey(ctrl))
		}
	}
}

func selectSection(ctx context.Context, ctrl *session.Controller, id string) {
	section := ctrl.SelectSection(ctx, id)
	printThread(ctrl.Session(), id)
	if len(section.Hints) > 0 {
		fmt.Println("Suggerimenti:")
		for _, hint := range section.Hints {
			fmt.Printf("  - %s\n", hint)
		}
		fmt.Println()
	}
}

func submitContact(ctx context.Context, ctrl *session.Controller, args string) {
	parts := strings.SplitN(args, "|", 3)
	if len(parts) != 3 {
		fmt.Println("Uso: /contatti <nome>|<email>|<messaggio>")
		return
	}

	ctrl.SubmitContact(ctx, domain.ContactSubmission{
		Name:    strings.TrimSpace(parts[0]),
		Email:   strings.TrimSpace(parts[1]),
		Message: strings.TrimSpace(parts[2]),
	})

	status := ctrl.ContactStatus()
	switch status.State {
	case session.ContactOK:
		fmt.Println("Messaggio inviato! Ti ricontattiamo a breve. ✅")
	case session.ContactError:
		fmt.Printf("Invio non riuscito: %s\n", status.Message)
	}
}

// lastThreadKey returns the key to render after a question: sending can
// auto-switch the active section on escalation, and the conversation
// the user just extended is the one worth showing.
func lastThreadKey(ctrl *session.Controller) string {
	return ctrl.Session().ActiveThreadKey()
}

func printThread(s *session.Session, key string) {
	for _, msg := range s.Thread(key) {
		prefix := "spin-bot"
		if msg.Role == domain.RoleUser {
			prefix = "tu"
		}
		fmt.Printf("[%s] %s\n", prefix, msg.Text)
	}
	fmt.Println()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
