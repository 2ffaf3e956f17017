package moment

import (
	"time"

	"github.com/hitoshi/blogd/internal/model"
)

// seedMoments は日常動態の初期データを返す。
// スロットが空のとき、およびReset時に読み込まれる。
func seedMoments() []model.Moment {
	return []model.Moment{
		{
			ID:        "1",
			Content:   "今天天气真好！在公园里散步，看到了很多美丽的花朵。春天真的来了，心情也变得格外愉悦。生活中的小美好总是让人感到幸福。",
			Images:    []string{"/api/placeholder/400/300", "/api/placeholder/400/300"},
			Location:  "中央公园",
			Mood:      model.MoodHappy,
			Tags:      []string{"散步", "春天", "花朵"},
			CreatedAt: seedTime("2024-01-20T10:30:00Z"),
			Likes:     12,
			Weather: &model.Weather{
				Condition:   "晴朗",
				Temperature: 22,
				Icon:        "☀️",
			},
			Comments: []model.MomentComment{
				{
					ID:        "1",
					Author:    "小明",
					Content:   "照片拍得真美！",
					CreatedAt: seedTime("2024-01-20T11:00:00Z"),
				},
				{
					ID:        "2",
					Author:    "小红",
					Content:   "我也想去公园走走",
					CreatedAt: seedTime("2024-01-20T11:30:00Z"),
				},
			},
		},
		{
			ID:        "2",
			Content:   "刚刚完成了一个新的项目，使用Next.js和Tailwind CSS搭建了这个个人博客。虽然过程中遇到了一些挑战，但最终的效果让我很满意。技术的魅力就在于能够将想法变成现实。",
			Location:  "家里",
			Mood:      model.MoodExcited,
			Tags:      []string{"编程", "Next.js", "项目"},
			CreatedAt: seedTime("2024-01-19T20:15:00Z"),
			Likes:     8,
			Comments: []model.MomentComment{
				{
					ID:        "3",
					Author:    "技术爱好者",
					Content:   "厉害！可以分享一下技术栈吗？",
					CreatedAt: seedTime("2024-01-19T21:00:00Z"),
				},
			},
		},
		{
			ID:        "3",
			Content:   "今天读了一本很有意思的书《人类简史》，作者对人类文明发展的见解很独特。特别是关于认知革命的部分，让我重新思考了很多问题。读书真的能开阔视野。",
			Mood:      model.MoodThoughtful,
			Tags:      []string{"读书", "思考", "历史"},
			CreatedAt: seedTime("2024-01-18T19:45:00Z"),
			Likes:     15,
			Comments: []model.MomentComment{
				{
					ID:        "4",
					Author:    "书虫",
					Content:   "这本书我也在读，确实很棒！",
					CreatedAt: seedTime("2024-01-18T20:00:00Z"),
				},
				{
					ID:        "5",
					Author:    "哲学家",
					Content:   "推荐你也读读《未来简史》",
					CreatedAt: seedTime("2024-01-18T20:30:00Z"),
				},
			},
		},
		{
			ID:        "4",
			Content:   "周末和朋友们一起做饭，尝试了新的菜谱。虽然第一次做有点手忙脚乱，但最后的味道还不错。和朋友一起分享美食的时光总是特别温馨。",
			Images:    []string{"/api/placeholder/400/300"},
			Location:  "朋友家",
			Mood:      model.MoodHappy,
			Tags:      []string{"美食", "朋友", "周末"},
			CreatedAt: seedTime("2024-01-17T18:20:00Z"),
			Likes:     20,
			Comments: []model.MomentComment{
				{
					ID:        "6",
					Author:    "美食家",
					Content:   "看起来很香！能分享食谱吗？",
					CreatedAt: seedTime("2024-01-17T19:00:00Z"),
				},
			},
		},
		{
			ID:        "5",
			Content:   "最近工作比较忙，但还是要记得照顾好自己。今天早起跑了步，感觉整个人都精神了很多。运动真的是最好的解压方式。",
			Mood:      model.MoodBusy,
			Tags:      []string{"运动", "跑步", "健康"},
			CreatedAt: seedTime("2024-01-16T07:30:00Z"),
			Likes:     10,
			Weather: &model.Weather{
				Condition:   "多云",
				Temperature: 18,
				Icon:        "⛅",
			},
		},
	}
}

// seedTime はRFC3339形式の固定シード時刻をパースする。
func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
