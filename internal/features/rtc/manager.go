package rtc

import (
	"sync"

	"github.com/pion/webrtc/v4"
	"go.uber.org/zap"
)

// Manager owns one peer connection per signaling client. State lives
// only in memory: a disconnect discards the session.
type Manager struct {
	mu     sync.Mutex
	peers  map[string]*webrtc.PeerConnection
	logger *zap.Logger
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		peers:  make(map[string]*webrtc.PeerConnection),
		logger: logger,
	}
}

// HandleOffer answers an SDP offer for the given client. An existing
// peer connection for the same client is replaced.
func (m *Manager) HandleOffer(clientID, sdp string) (*webrtc.SessionDescription, error) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, err
	}

	pc.OnTrack(func(track *webrtc.TrackRemote, receiver *webrtc.RTPReceiver) {
		m.logger.Debug("track received",
			zap.String("client_id", clientID),
			zap.String("kind", track.Kind().String()))
	})

	m.mu.Lock()
	if old, ok := m.peers[clientID]; ok {
		old.Close()
	}
	m.peers[clientID] = pc
	m.mu.Unlock()

	offer := webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: sdp}
	if err := pc.SetRemoteDescription(offer); err != nil {
		m.Close(clientID)
		return nil, err
	}

	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		m.Close(clientID)
		return nil, err
	}

	gatherComplete := webrtc.GatheringCompletePromise(pc)
	if err := pc.SetLocalDescription(answer); err != nil {
		m.Close(clientID)
		return nil, err
	}
	<-gatherComplete

	return pc.LocalDescription(), nil
}

// Close tears down and forgets the client's peer connection, if any.
func (m *Manager) Close(clientID string) {
	m.mu.Lock()
	pc, ok := m.peers[clientID]
	if ok {
		delete(m.peers, clientID)
	}
	m.mu.Unlock()

	if ok {
		pc.Close()
	}
}
