// Package extract turns raw chat transcripts into structured candidate
// profiles via an analysis oracle. The matching core never depends on this
// package; it only consumes the candidate store the runner produces.
package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Message is one chat message in source order.
type Message struct {
	Time   string `json:"time"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Chat is one candidate conversation.
type Chat struct {
	FileName string    `json:"fileName"`
	ChatName string    `json:"chatName"`
	Messages []Message `json:"messages"`
}

// ReadChatDir loads every exported conversation file from the directory,
// skipping the export summary. Result order follows the sorted file names.
func ReadChatDir(dir string) ([]*Chat, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read messages dir: %w", err)
	}

	var chats []*Chat
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == "export_summary.json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read chat %q: %w", name, err)
		}

		var chat Chat
		if err := json.Unmarshal(data, &chat); err != nil {
			return nil, fmt.Errorf("decode chat %q: %w", name, err)
		}

		chat.FileName = name
		if chat.ChatName == "" {
			chat.ChatName = strings.TrimSuffix(name, ".json")
		}
		chats = append(chats, &chat)
	}

	return chats, nil
}

// tiktokExport mirrors the relevant slice of the TikTok data export format.
type tiktokExport struct {
	DirectMessage struct {
		DirectMessages struct {
			ChatHistory map[string][]tiktokMessage `json:"ChatHistory"`
		} `json:"Direct Messages"`
	} `json:"Direct Message"`
}

type tiktokMessage struct {
	Date    string `json:"Date"`
	From    string `json:"From"`
	Content string `json:"Content"`
}

// ReadTikTokExport converts a TikTok account data export into the common chat
// shape. The export stores messages newest-first; they are reversed into
// chronological order. Chats are sorted case-insensitively by name.
func ReadTikTokExport(path string) ([]*Chat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tiktok export: %w", err)
	}

	var export tiktokExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decode tiktok export %q: %w", path, err)
	}

	var chats []*Chat
	for key, messages := range export.DirectMessage.DirectMessages.ChatHistory {
		name := strings.TrimSuffix(strings.TrimPrefix(key, "Chat History with "), ":")

		converted := make([]Message, 0, len(messages))
		for i := len(messages) - 1; i >= 0; i-- {
			converted = append(converted, Message{
				Time:   messages[i].Date,
				Author: messages[i].From,
				Text:   messages[i].Content,
			})
		}

		chats = append(chats, &Chat{
			FileName: name + ".json",
			ChatName: name,
			Messages: converted,
		})
	}

	sort.Slice(chats, func(i, j int) bool {
		return strings.ToLower(chats[i].ChatName) < strings.ToLower(chats[j].ChatName)
	})

	return chats, nil
}

// Transcript renders the conversation for the analysis prompt, one numbered
// line per message.
func (c *Chat) Transcript() string {
	var b strings.Builder
	for i, msg := range c.Messages {
		time := msg.Time
		if time == "" {
			time = "no time"
		}
		author := msg.Author
		if author == "" {
			author = "unknown"
		}
		fmt.Fprintf(&b, "#%d [%s] %s: %s\n", i+1, time, author, msg.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
