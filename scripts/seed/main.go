package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/go-sql-driver/mysql"
)

func main() {
	dsn := flag.String("dsn", "root:root@tcp(127.0.0.1:3306)/chatlog?parseTime=true", "MySQL DSN")
	flag.Parse()

	db, err := sql.Open("mysql", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	conversationID := uuid.New().String()

	_, err = db.Exec(`
		INSERT INTO conversations (conversation_id, title, metadata, created_at, updated_at)
		VALUES (?, 'Demo conversation', '{"source":"seed"}', NOW(), NOW())
	`, conversationID)
	if err != nil {
		log.Fatalf("Conversation insert failed: %v", err)
	}
	fmt.Printf("✓ Conversation %s created\n", conversationID)

	messages := []struct {
		userID     string
		senderType string
		content    string
	}{
		{"demo-user", "user", "Hi, I can't log into my account."},
		{"support-bot", "assistant", "Sorry to hear that. Have you tried resetting your password?"},
		{"demo-user", "user", "Yes, but the reset email never arrives."},
		{"support-bot", "assistant", "I've re-sent the reset email, please check your spam folder."},
		{"demo-user", "user", "Got it now, thanks! That fixed it."},
	}

	for _, m := range messages {
		_, err = db.Exec(`
			INSERT INTO messages (conversation_id, user_id, sender_type, content, timestamp)
			VALUES (?, ?, ?, ?, NOW())
		`, conversationID, m.userID, m.senderType, m.content)
		if err != nil {
			log.Fatalf("Message insert failed: %v", err)
		}
	}
	fmt.Printf("✓ %d messages inserted\n", len(messages))

	fmt.Println("✓ Seed data complete!")
}
