package game

import "strings"

// MsgPriority controls the color of a message in the log panel.
type MsgPriority uint8

const (
	MsgInfo      MsgPriority = iota // cyan
	MsgNotice                       // white
	MsgWarning                      // yellow
	MsgEmergency                    // red
)

// Message is a single line in the log panel.
type Message struct {
	Text     string
	Priority MsgPriority
}

// MessageLog is a bounded FIFO of wrapped lines.
type MessageLog struct {
	Messages []Message
	maxSize  int
	width    int
}

// NewMessageLog creates a log that keeps the most recent maxSize lines,
// wrapping text at width columns.
func NewMessageLog(maxSize, width int) *MessageLog {
	return &MessageLog{
		Messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		width:    width,
	}
}

// Add wraps text and appends the lines, evicting the oldest when full.
func (l *MessageLog) Add(text string, priority MsgPriority) {
	for _, line := range WrapText(text, l.width) {
		msg := Message{Text: line, Priority: priority}
		if len(l.Messages) >= l.maxSize {
			copy(l.Messages, l.Messages[1:])
			l.Messages[len(l.Messages)-1] = msg
		} else {
			l.Messages = append(l.Messages, msg)
		}
	}
}

// Recent returns the last n lines (or fewer if the log is shorter).
func (l *MessageLog) Recent(n int) []Message {
	if n > len(l.Messages) {
		n = len(l.Messages)
	}
	return l.Messages[len(l.Messages)-n:]
}

// WrapText splits s on whitespace into lines no longer than width. A
// single word longer than width gets a line of its own.
func WrapText(s string, width int) []string {
	if len(s) <= width || width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	return append(lines, line)
}
