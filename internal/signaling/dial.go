package signaling

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"

	"github.com/frudas24/nanoremote/internal/logging"
	rtc "github.com/frudas24/nanoremote/internal/webrtc"
)

// Link is a client data channel together with its peer and signaling socket.
type Link struct {
	*rtc.Conn
	peer *webrtc.PeerConnection
	ws   *websocket.Conn
}

// Close tears down the channel, the peer and the signaling socket.
func (l *Link) Close() error {
	err := l.Conn.Close()
	_ = l.peer.Close()
	_ = l.ws.Close()
	return err
}

// Dial offers a data channel to the signaling endpoint at url and waits until
// it opens.
func Dial(ctx context.Context, url string, peers *rtc.Factory) (*Link, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial signaling: %w", err)
	}
	peer, err := peers.NewPeer()
	if err != nil {
		_ = ws.Close()
		return nil, err
	}
	link, err := offer(ctx, ws, peer)
	if err != nil {
		_ = peer.Close()
		_ = ws.Close()
		return nil, err
	}
	return link, nil
}

func offer(ctx context.Context, ws *websocket.Conn, peer *webrtc.PeerConnection) (*Link, error) {
	dc, err := peer.CreateDataChannel(rtc.ChannelLabel, nil)
	if err != nil {
		return nil, fmt.Errorf("create data channel: %w", err)
	}
	conn := rtc.NewConn(dc)

	sdp, err := peer.CreateOffer(nil)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	gatherComplete := webrtc.GatheringCompletePromise(peer)
	if err := peer.SetLocalDescription(sdp); err != nil {
		return nil, err
	}
	select {
	case <-gatherComplete:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	out := &socket{conn: ws}
	if err := out.send(Message{T: KindOffer, SDP: peer.LocalDescription().SDP}); err != nil {
		return nil, fmt.Errorf("send offer: %w", err)
	}

	answered := make(chan error, 1)
	go readAnswers(ws, peer, answered)

	select {
	case err := <-answered:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case <-conn.Opened():
	case <-conn.Done():
		return nil, errors.New("data channel closed before open")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &Link{Conn: conn, peer: peer, ws: ws}, nil
}

// readAnswers applies the answer and late candidates until the socket closes.
// The first answer outcome is reported on answered.
func readAnswers(ws *websocket.Conn, peer *webrtc.PeerConnection, answered chan<- error) {
	log := logging.L("signaling")
	reported := false
	report := func(err error) {
		if !reported {
			reported = true
			answered <- err
		}
	}
	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			report(fmt.Errorf("read answer: %w", err))
			return
		}
		switch msg.T {
		case KindAnswer:
			report(peer.SetRemoteDescription(webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: msg.SDP}))
		case KindICE:
			if err := addCandidate(peer, msg.Candidate); err != nil {
				log.Debug("candidate ignored", logging.Err(err))
			}
		}
	}
}
