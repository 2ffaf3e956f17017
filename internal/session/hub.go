package session

import (
	"sync"

	"github.com/hitoshi/blogd/internal/model"
)

// Hub はセッション変更の購読・配信を行うインプロセスのブロードキャスター。
// ブラウザのカスタムイベント＋storageイベントに相当し、
// マウント中の全ビューが同一ロールに収束するための仕組み。
// 購読側はマウント時にSubscribeし、アンマウント時に必ず解除関数を呼ぶ。
type Hub struct {
	mu   sync.RWMutex
	subs map[chan *model.User]struct{}
}

// NewHub はHubを生成する。
func NewHub() *Hub {
	return &Hub{subs: make(map[chan *model.User]struct{})}
}

// Subscribe はセッション変更の通知チャネルと購読解除関数を返す。
// チャネルはバッファ付きで、受信が追いつかない購読者への配信は黙って捨てられる。
func (h *Hub) Subscribe() (chan *model.User, func()) {
	ch := make(chan *model.User, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
}

// Broadcast は新しいセッション値を全購読者に配信する。
// ログアウトはnilとして配信される。
func (h *Hub) Broadcast(user *model.User) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- user:
		default:
		}
	}
}

// SubscriberCount は現在の購読者数を返す。
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
