package chat

import "time"

// aiReplyMsg is sent when the tutor chat call resolves. Epoch ties the
// reply to the channel view that requested it.
type aiReplyMsg struct {
	Epoch   int
	Content string
}

// teacherReplyMsg is sent after the simulated teacher-reply delay.
type teacherReplyMsg struct {
	Epoch int
}

// spinnerTickMsg animates the waiting indicator.
type spinnerTickMsg time.Time
