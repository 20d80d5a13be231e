package domain

import (
	"strings"
	"unicode/utf8"
)

// Role identifies the author of a chat message.
type Role string

// Message roles.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleModel
}

// Fixed chat texts.
const (
	// DefaultGreeting seeds every new session.
	DefaultGreeting = "سلام! من هوش مصنوعی مشروطه‌خواه هستم. می‌توانم قوانین را تفسیر کنم و درباره تاریخ مشروطه توضیح دهم."

	// ApologyText replaces the answer when the assistant call fails.
	ApologyText = "متاسفانه خطایی در ارتباط با سرویس هوشمند رخ داد. لطفاً اتصال اینترنت خود را بررسی کنید."

	// EmptyAnswerText replaces an answer that coerces to nothing.
	EmptyAnswerText = "پاسخی دریافت نشد."

	// MissingKeyText is shown when no API key is configured.
	MissingKeyText = "خطا: کلید API یافت نشد."
)

// ChatTitleRunes is how much of the first user message forms a chat title.
const ChatTitleRunes = 30

// ChatMessage is one entry of a transcript. Text is always plain text;
// structured assistant payloads are coerced before a message is built.
type ChatMessage struct {
	ID          string   `json:"id"`
	Role        Role     `json:"role"`
	Text        string   `json:"text"`
	Suggestions []string `json:"relatedQuestions,omitempty"`

	// Audio is base64 encoded speech for model messages, if synthesised.
	Audio string `json:"audioUrl,omitempty"`
}

// SavedChat is the persisted form of a session.
type SavedChat struct {
	// ID equals the session id minted when the session started.
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Date     string        `json:"date"`
	Messages []ChatMessage `json:"messages"`
}

// RawReply is an assistant answer as decoded from the provider.
// Either field may hold any JSON shape until it is coerced into a Reply.
type RawReply struct {
	Text        any
	Suggestions any
}

// Reply is the validated answer of the AI assistant.
type Reply struct {
	Text        string
	Suggestions []string
}

// ChatTitle derives a saved chat title from the first user message of a
// transcript. Transcripts without a user message yield an empty title.
func ChatTitle(messages []ChatMessage) string {
	for _, m := range messages {
		if m.Role != RoleUser {
			continue
		}
		return truncateRunes(m.Text, ChatTitleRunes) + "..."
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// RenderTranscript renders messages as plain text, one block per message.
func RenderTranscript(title string, messages []ChatMessage) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch m.Role {
		case RoleUser:
			b.WriteString("کاربر: ")
		default:
			b.WriteString("هوش مصنوعی: ")
		}
		b.WriteString(m.Text)
		b.WriteString("\n")
		for _, s := range m.Suggestions {
			b.WriteString("  - ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	return b.String()
}
