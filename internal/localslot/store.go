// Package localslot はローカル永続化スロットを提供する。
//
// ブラウザのlocalStorageに相当する小さなキー・バリュー領域で、
// セッションフラグと動態コレクションの2スロットだけを保持する。
// 値はJSONエンコードされ、壊れた値は「存在しない」として扱われて
// 次回の書き込みで置き換えられる（バージョニングや移行処理は持たない）。
package localslot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// 永続化スロットのキー名。
const (
	// KeyAuth はセッション/ロールフラグのスロット。
	KeyAuth = "personal-blog-auth"
	// KeyMoments は動態コレクションのスロット。
	KeyMoments = "personal-blog-moments"
)

// Store はpebbleを背後に持つJSONスロットストア。
type Store struct {
	db *pebble.DB
}

// Open は指定パスにスロットストアを開く。
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open slot store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMem はインメモリのスロットストアを開く。テスト用。
func OpenMem() (*Store, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory slot store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close はストアを閉じる。
func (s *Store) Close() error {
	return s.db.Close()
}

// Get はスロットの値をoutにデコードする。
// キーが存在しない場合、および値が壊れていてデコードできない場合はfalseを返す。
// 壊れた値はエラーにせずログに残すだけで、呼び出し元にはnull/デフォルト相当を返す。
func (s *Store) Get(key string, out any) (bool, error) {
	value, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	defer closer.Close()

	if err := json.Unmarshal(value, out); err != nil {
		slog.Error("slot value is corrupt, treating as absent",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false, nil
	}
	return true, nil
}

// Put はスロットにJSONエンコードした値を書き込む。
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot %q: %w", key, err)
	}
	if err := s.db.Set([]byte(key), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// Delete はスロットを削除する。未存在のキーに対しては何もしない。
func (s *Store) Delete(key string) error {
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}

// PutRaw は生のバイト列をスロットに書き込む。壊れた値の動作検証などテスト用途。
func (s *Store) PutRaw(key string, data []byte) error {
	if err := s.db.Set([]byte(key), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}
