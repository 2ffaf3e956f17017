// Package model はドメインモデルを定義する。
package model

import "time"

// Mood は日常動態の気分種別を表す。
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodSad        Mood = "sad"
	MoodExcited    Mood = "excited"
	MoodThoughtful Mood = "thoughtful"
	MoodRelaxed    Mood = "relaxed"
	MoodBusy       Mood = "busy"
)

// ValidMood は気分種別が定義済みの値かを返す。空文字列は「未指定」として許容する。
func ValidMood(m Mood) bool {
	switch m {
	case "", MoodHappy, MoodSad, MoodExcited, MoodThoughtful, MoodRelaxed, MoodBusy:
		return true
	default:
		return false
	}
}

// Weather は動態投稿時の天気スナップショット。
type Weather struct {
	Condition   string `json:"condition"`
	Temperature int    `json:"temperature"`
	Icon        string `json:"icon"`
}

// MomentComment は動態へのネストされたコメント。
type MomentComment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Avatar    string    `json:"avatar,omitempty"`
}

// Moment はブログ管理者が投稿する日常動態。
// ローカルストレージスロットにJSON配列として永続化される（唯一の耐久化機構）。
type Moment struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	Images    []string        `json:"images,omitempty"`
	Location  string          `json:"location,omitempty"`
	Mood      Mood            `json:"mood,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Likes     int             `json:"likes"`
	Comments  []MomentComment `json:"comments,omitempty"`
	Weather   *Weather        `json:"weather,omitempty"`
}
