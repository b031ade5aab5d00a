package signaling

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"

	"github.com/frudas24/nanoremote/internal/logging"
	"github.com/frudas24/nanoremote/internal/session"
	rtc "github.com/frudas24/nanoremote/internal/webrtc"
)

// Server answers data channel offers and binds each channel to a session.
type Server struct {
	upgrader websocket.Upgrader
	peers    *rtc.Factory
	sessions *session.Manager
	log      *slog.Logger
}

// NewServer creates a signaling server.
func NewServer(peers *rtc.Factory, sessions *session.Manager) *Server {
	return &Server{
		peers:    peers,
		sessions: sessions,
		log:      logging.L("signaling"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and runs the signaling loop. The peer lives
// as long as the signaling socket.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	peer, err := s.peers.NewPeer()
	if err != nil {
		s.log.Error("peer setup failed", logging.Err(err))
		return
	}
	defer peer.Close()

	out := &socket{conn: conn}
	peer.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		candidate := c.ToJSON()
		_ = out.send(Message{T: KindICE, Candidate: &candidate})
	})
	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != rtc.ChannelLabel {
			_ = dc.Close()
			return
		}
		go s.serveChannel(rtc.NewConn(dc), r.RemoteAddr)
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(out, peer, msg); err != nil {
			s.log.Debug("signaling failed", logging.KeyRemote, r.RemoteAddr, logging.Err(err))
			return
		}
	}
}

// serveChannel runs a session over an opened data channel.
func (s *Server) serveChannel(c *rtc.Conn, remote string) {
	select {
	case <-c.Opened():
	case <-c.Done():
		return
	}
	sess, err := s.sessions.Open(remote, c)
	if err != nil {
		s.log.Error("session setup failed", logging.KeyRemote, remote, logging.Err(err))
		_ = c.Close()
		return
	}
	defer s.sessions.Release(sess)
	for {
		data, err := c.ReadMessage()
		if err != nil {
			return
		}
		sess.HandleRaw(data)
	}
}

// handleMessage dispatches signaling messages.
func (s *Server) handleMessage(out *socket, peer *webrtc.PeerConnection, msg Message) error {
	switch msg.T {
	case KindOffer:
		return s.handleOffer(out, peer, msg.SDP)
	case KindICE:
		return addCandidate(peer, msg.Candidate)
	default:
		return nil
	}
}

// handleOffer processes an SDP offer and replies with an answer.
func (s *Server) handleOffer(out *socket, peer *webrtc.PeerConnection, sdp string) error {
	if sdp == "" {
		return errors.New("empty offer")
	}
	if err := peer.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeOffer,
		SDP:  sdp,
	}); err != nil {
		return err
	}
	answer, err := peer.CreateAnswer(nil)
	if err != nil {
		return err
	}
	gatherComplete := webrtc.GatheringCompletePromise(peer)
	if err := peer.SetLocalDescription(answer); err != nil {
		return err
	}
	<-gatherComplete
	local := peer.LocalDescription()
	if local == nil {
		return errors.New("missing local description")
	}
	return out.send(Message{T: KindAnswer, SDP: local.SDP})
}

// addCandidate adds a remote ICE candidate.
func addCandidate(peer *webrtc.PeerConnection, candidate *webrtc.ICECandidateInit) error {
	if candidate == nil {
		return nil
	}
	return peer.AddICECandidate(*candidate)
}

// socket serializes writes on a signaling websocket.
type socket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *socket) send(msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}
