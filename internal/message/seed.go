package message

import (
	"time"

	"github.com/hitoshi/blogd/internal/model"
)

// seedMessages は統合メッセージの初期データを返す。
// サービス構築時に1回だけ読み込まれ、以降はインメモリで直接変更される。
func seedMessages() []model.UnifiedMessage {
	return []model.UnifiedMessage{
		{
			ID:        "unified_1",
			Type:      model.MessageTypeQQ,
			From:      "小明",
			To:        "我",
			Content:   "你好！看到你的博客了，写得很不错！",
			Timestamp: seedTime("2024-01-20T14:30:00Z"),
			Read:      false,
			Avatar:    "/api/placeholder/40/40",
			Platform:  model.PlatformLabel(model.MessageTypeQQ),
		},
		{
			ID:        "unified_2",
			Type:      model.MessageTypeEmail,
			From:      "friend@example.com",
			To:        "your.email@example.com",
			Content:   "我看到了你的个人博客，做得非常棒！特别是那个日常动态的功能，很有创意。",
			Subject:   "关于你的博客项目",
			Timestamp: seedTime("2024-01-20T14:30:00Z"),
			Read:      false,
			Platform:  model.PlatformLabel(model.MessageTypeEmail),
		},
		{
			ID:        "unified_3",
			Type:      model.MessageTypeWeChat,
			From:      "小张",
			To:        "我",
			Content:   "你的博客做得不错啊！",
			Timestamp: seedTime("2024-01-20T11:00:00Z"),
			Read:      true,
			Avatar:    "/api/placeholder/40/40",
			Platform:  model.PlatformLabel(model.MessageTypeWeChat),
		},
		{
			ID:        "unified_4",
			Type:      model.MessageTypeQQ,
			From:      "技术爱好者",
			To:        "我",
			Content:   "厉害！可以分享一下技术栈吗？",
			Timestamp: seedTime("2024-01-19T21:00:00Z"),
			Read:      true,
			Avatar:    "/api/placeholder/40/40",
			Platform:  model.PlatformLabel(model.MessageTypeQQ),
		},
		{
			ID:        "unified_5",
			Type:      model.MessageTypeEmail,
			From:      "newsletter@techblog.com",
			To:        "your.email@example.com",
			Content:   "本周技术要闻：React 19 发布候选版本，Next.js 15 新特性预览...",
			Subject:   "本周技术资讯汇总",
			Timestamp: seedTime("2024-01-20T09:15:00Z"),
			Read:      true,
			Platform:  model.PlatformLabel(model.MessageTypeEmail),
		},
	}
}

// seedTime はシードデータのRFC3339タイムスタンプをパースする。
func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
