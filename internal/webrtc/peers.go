// Package webrtc carries the control protocol over a WebRTC data channel.
package webrtc

import (
	"fmt"
	"strings"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"
)

// Factory builds peer connections sharing one configured API.
type Factory struct {
	api    *webrtc.API
	config webrtc.Configuration
}

// NewFactory initializes the WebRTC API with default codecs/interceptors and
// the given ICE server URLs. An empty list means host candidates only.
func NewFactory(iceServers []string) (*Factory, error) {
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)

	return &Factory{api: api, config: Configuration(iceServers)}, nil
}

// Configuration converts ICE server URLs into a peer configuration.
func Configuration(iceServers []string) webrtc.Configuration {
	var urls []string
	for _, u := range iceServers {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return webrtc.Configuration{}
	}
	return webrtc.Configuration{ICEServers: []webrtc.ICEServer{{URLs: urls}}}
}

// NewPeer creates a new peer connection.
func (f *Factory) NewPeer() (*webrtc.PeerConnection, error) {
	peer, err := f.api.NewPeerConnection(f.config)
	if err != nil {
		return nil, fmt.Errorf("new peer: %w", err)
	}
	return peer, nil
}
