// Package signaling exchanges WebRTC offers, answers and ICE candidates over
// WebSocket so a viewer can reach its session on a data channel.
package signaling

import "github.com/pion/webrtc/v3"

// Signaling message kinds.
const (
	KindOffer  = "offer"
	KindAnswer = "answer"
	KindICE    = "ice"
)

// Message is a websocket signaling payload.
type Message struct {
	T         string                   `json:"t"`
	SDP       string                   `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
}
