package contact

import "fmt"

// Notices shown to the person filling in the form.
const (
	NoticeMissingFields = "Please fill name, email and message."
	NoticeSent          = "Message sent — thank you!"
	NoticeFailed        = "Failed to send message."
	NoticeUnexpected    = "Unexpected server response. See logs for details."
	NoticeNetwork       = "Network error while sending message."
	NoticeBusy          = "A message is already being sent."
)

// StatusNotice is the generic notice for a non-2xx relay response.
func StatusNotice(status int) string {
	return fmt.Sprintf("Failed to send message. Server responded with %d.", status)
}

// RejectedNotice is the notice for a structured failure from the relay.
func RejectedNotice(serverMsg string) string {
	if serverMsg == "" {
		return NoticeFailed
	}
	return "Failed to send message: " + serverMsg
}
