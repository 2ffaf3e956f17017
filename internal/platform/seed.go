package platform

// シードデータ。各シミュレーターの構築時に1回だけ読み込まれ、
// 以降はインメモリで直接変更される。プロセス再起動で初期状態に戻る。

// qqProfile はQQの擬似ログインで返されるアカウント情報。
var qqProfile = Profile{
	OpenID:   "mock_qq_user_123",
	Nickname: "博主",
	Avatar:   "/api/placeholder/50/50",
	Gender:   "男",
	Province: "北京",
	City:     "北京",
}

// wechatProfile は微信の擬似ログインで返されるアカウント情報。
var wechatProfile = Profile{
	OpenID:   "mock_wechat_user_123",
	Nickname: "博主",
	Avatar:   "/api/placeholder/50/50",
	Gender:   "男",
	Province: "北京",
	City:     "北京",
	Country:  "中国",
}

// mailAccount はメールの擬似ログインで返されるアカウント情報。
var mailAccount = Account{
	ID:       "account_1",
	Email:    "your.email@example.com",
	Name:     "博主",
	Provider: "gmail",
	Avatar:   "/api/placeholder/50/50",
}

func seedQQContacts() []Contact {
	return []Contact{
		{
			ID:       "friend_1",
			Nickname: "小明",
			Avatar:   "/api/placeholder/40/40",
			Status:   StatusOnline,
		},
		{
			ID:       "friend_2",
			Nickname: "小红",
			Avatar:   "/api/placeholder/40/40",
			Status:   StatusOffline,
			LastSeen: timePtr(mustTime("2024-01-20T10:30:00Z")),
		},
		{
			ID:       "friend_3",
			Nickname: "技术爱好者",
			Avatar:   "/api/placeholder/40/40",
			Status:   StatusAway,
		},
	}
}

func seedQQLogs() map[string][]ChatMessage {
	return map[string][]ChatMessage{
		"friend_1": {
			{
				ID:        "1",
				From:      "friend_1",
				To:        "mock_qq_user_123",
				Content:   "你好！看到你的博客了，写得很不错！",
				Kind:      KindText,
				Timestamp: mustTime("2024-01-20T10:00:00Z"),
				Avatar:    "/api/placeholder/40/40",
			},
			{
				ID:        "2",
				From:      "mock_qq_user_123",
				To:        "friend_1",
				Content:   "谢谢！还在不断完善中",
				Kind:      KindText,
				Timestamp: mustTime("2024-01-20T10:05:00Z"),
				Avatar:    "/api/placeholder/50/50",
			},
			{
				ID:        "3",
				From:      "friend_1",
				To:        "mock_qq_user_123",
				Content:   "期待看到更多内容！",
				Kind:      KindText,
				Timestamp: mustTime("2024-01-20T10:10:00Z"),
				Avatar:    "/api/placeholder/40/40",
			},
		},
		"friend_2": {
			{
				ID:        "4",
				From:      "friend_2",
				To:        "mock_qq_user_123",
				Content:   "最近怎么样？",
				Kind:      KindText,
				Timestamp: mustTime("2024-01-19T15:30:00Z"),
				Avatar:    "/api/placeholder/40/40",
			},
		},
	}
}

func seedWeChatContacts() []Contact {
	return []Contact{
		{
			ID:       "wechat_friend_1",
			Nickname: "小张",
			Avatar:   "/api/placeholder/40/40",
			Remark:   "同事小张",
			Status:   StatusOnline,
		},
		{
			ID:       "wechat_friend_2",
			Nickname: "老王",
			Avatar:   "/api/placeholder/40/40",
			Status:   StatusOffline,
			LastSeen: timePtr(mustTime("2024-01-20T09:30:00Z")),
		},
		{
			ID:       "wechat_friend_3",
			Nickname: "设计师小李",
			Avatar:   "/api/placeholder/40/40",
			Remark:   "UI设计师",
			Status:   StatusOnline,
		},
	}
}

func seedWeChatLogs() map[string][]ChatMessage {
	return map[string][]ChatMessage{
		"wechat_friend_1": {
			{
				ID:        "1",
				From:      "wechat_friend_1",
				To:        "mock_wechat_user_123",
				Content:   "你的博客做得不错啊！",
				Kind:      KindText,
				Timestamp: mustTime("2024-01-20T11:00:00Z"),
				Avatar:    "/api/placeholder/40/40",
			},
			{
				ID:        "2",
				From:      "mock_wechat_user_123",
				To:        "wechat_friend_1",
				Content:   "谢谢！还在持续优化中",
				Kind:      KindText,
				Timestamp: mustTime("2024-01-20T11:05:00Z"),
				Avatar:    "/api/placeholder/50/50",
			},
			{
				ID:        "3",
				From:      "wechat_friend_1",
				To:        "mock_wechat_user_123",
				Content:   "有什么新功能吗？",
				Kind:      KindText,
				Timestamp: mustTime("2024-01-20T11:10:00Z"),
				Avatar:    "/api/placeholder/40/40",
			},
		},
		"wechat_friend_2": {
			{
				ID:        "4",
				From:      "wechat_friend_2",
				To:        "mock_wechat_user_123",
				Content:   "最近在忙什么？",
				Kind:      KindText,
				Timestamp: mustTime("2024-01-19T16:30:00Z"),
				Avatar:    "/api/placeholder/40/40",
			},
		},
	}
}

func seedEmails() []Email {
	return []Email{
		{
			ID:        "email_1",
			From:      "friend@example.com",
			To:        []string{"your.email@example.com"},
			Subject:   "关于你的博客项目",
			Content:   "你好！\n\n我看到了你的个人博客，做得非常棒！特别是那个日常动态的功能，很有创意。\n\n我想问一下：\n1. 你是用什么技术栈开发的？\n2. 有没有考虑开源？\n\n期待你的回复！\n\n最好的祝愿，\n朋友",
			Timestamp: mustTime("2024-01-20T14:30:00Z"),
			Read:      false,
			Folder:    FolderInbox,
		},
		{
			ID:        "email_2",
			From:      "newsletter@techblog.com",
			To:        []string{"your.email@example.com"},
			Subject:   "本周技术资讯汇总",
			Content:   "本周技术要闻：\n\n1. React 19 发布候选版本\n2. Next.js 15 新特性预览\n3. TypeScript 5.3 正式发布\n\n点击查看详情...",
			Timestamp: mustTime("2024-01-20T09:15:00Z"),
			Read:      true,
			Starred:   true,
			Folder:    FolderInbox,
			Labels:    []string{"技术", "资讯"},
		},
		{
			ID:        "email_3",
			From:      "your.email@example.com",
			To:        []string{"client@company.com"},
			Subject:   "项目进度更新",
			Content:   "亲爱的客户，\n\n项目目前进展顺利，已完成：\n- 前端界面设计\n- 核心功能开发\n- 响应式适配\n\n预计下周可以交付测试版本。\n\n谢谢！",
			Timestamp: mustTime("2024-01-19T16:45:00Z"),
			Read:      true,
			Folder:    FolderSent,
		},
		{
			ID:        "email_4",
			From:      "support@service.com",
			To:        []string{"your.email@example.com"},
			Subject:   "账户安全提醒",
			Content:   "我们检测到您的账户有异常登录活动。\n\n如果这不是您本人的操作，请立即：\n1. 修改密码\n2. 启用两步验证\n3. 联系客服\n\n保护账户安全是我们共同的责任。",
			Timestamp: mustTime("2024-01-19T11:20:00Z"),
			Read:      false,
			Folder:    FolderInbox,
		},
		{
			ID:        "email_5",
			From:      "your.email@example.com",
			To:        []string{"team@company.com"},
			Subject:   "会议纪要 - 产品规划讨论",
			Content:   "会议纪要\n\n时间：2024年1月18日\n参与者：产品团队\n\n讨论要点：\n1. Q1产品路线图\n2. 用户反馈分析\n3. 技术债务处理\n\n下次会议：1月25日",
			Timestamp: mustTime("2024-01-18T15:30:00Z"),
			Read:      true,
			Folder:    FolderDraft,
		},
	}
}
