package content

import "time"

var venue = Venue{
	Name:    "故宫博物院",
	Address: "北京市东城区景山前街4号",
	Hours:   "08:30 - 17:00（周二至周日）",
}

var homeCarousel = Carousel{
	Slides: []Slide{
		{Title: "博物馆 1", Image: "/static/museum.svg"},
		{Title: "博物馆 2", Image: "/static/palace.svg"},
	},
	Interval: 3 * time.Second,
	Loop:     true,
	Dots:     true,
}

var activityCarousel = Carousel{
	Slides: []Slide{
		{
			Title:    "青铜器时代特展",
			Subtitle: "探索三千年前的艺术",
			Image:    "https://images.unsplash.com/photo-1562064729-6c3f058785fd?w=1080",
		},
	},
	Interval: 3 * time.Second,
	Loop:     true,
	Dots:     true,
}

var seedActivities = []Activity{
	{
		ID:       1,
		Tag:      "展览",
		Title:    "青铜器时代特展",
		Date:     "2024.11.15-2025.06.30",
		Location: "华夏博物馆",
		Images: []string{
			"https://images.unsplash.com/photo-1761724794667-64dd1a9d0527?w=400",
			"https://images.unsplash.com/photo-1562064729-6c3f058785fd?w=400",
			"https://images.unsplash.com/photo-1612284230156-15fad4f9bb6d?w=400",
			"https://images.unsplash.com/photo-1761724794667-64dd1a9d0527?w=400",
		},
		Headline:  `艺术@苏美 | 萌"鹿"登场，画中有"韵"——苏绣体验活动`,
		Publisher: "苏州美术馆",
		Published: "2024年11月20日 14:22",
		Region:    "浙江",
		Body: `苏绣，是中国传统的刺绣工艺品之一。苏绣针法细腻，色彩明快，质感逼真，被誉为中国"锦绣之花"。它与湖南湘绣、广东粤绣、四川蜀绣一起，被誉为我国的四大名绣。

作为苏州的"文化名片"，苏绣以其灵动的针法和温婉的气质，成为江南刺绣艺术的代表之作。苏绣的图案设计融合了传统花鸟图案和独特的艺术风格，展现了中国传统文化的深厚底蕴。

本次体验活动将带您深入了解苏绣的历史文化，学习基础的刺绣技法，亲手制作属于自己的苏绣作品。在专业老师的指导下，您将感受针线在指尖流转的魅力。

- 活动时间：2024年11月30日 14:00-16:30
- 活动地点：苏州美术馆一楼活动室
- 报名方式：关注公众号在线报名

我们期待与您一起，在针线交织间感受传统文化的魅力。`,
	},
	{
		ID:        2,
		Tag:       "文物",
		Title:     "春宇陶艺等你来",
		Date:      "2024.11.17-2025.10.30",
		Location:  "九宫博物馆",
		Headline:  "春宇陶艺等你来",
		Publisher: "九宫博物馆",
		Published: "2024年11月17日 09:00",
		Region:    "北京",
		Body: `陶艺工作坊面向所有年龄段的观众开放，现场提供陶土与工具。

- 活动时间：每周六 10:00-12:00
- 活动地点：九宫博物馆二层工作坊`,
	},
	{
		ID:        3,
		Tag:       "展出",
		Title:     "现代科学学宝库",
		Date:      "2025.01.12-2025.12.30",
		Location:  "周口一站",
		Headline:  "现代科学学宝库",
		Publisher: "周口一站",
		Published: "2025年1月12日 10:30",
		Region:    "河南",
		Body: `展览汇集近现代科学仪器与手稿，讲述科学发现背后的故事。

- 展期：2025年1月12日至2025年12月30日`,
	},
}

var seedAnnouncements = []Announcement{
	{
		ID:       1,
		Tag:      "紧急",
		Kind:     "urgent",
		Title:    "春节期间开放时间调整通知",
		Summary:  "尊敬的游客朋友们，为配合春节假期安排，我馆于2月10日-2月17日延长开放时间至19:00，届时大家欢迎前来参观。",
		Date:     "2024年2月1日",
		Author:   "博物馆管理处",
		Category: "公告通知",
		Body: `尊敬的游客朋友们：

为配合春节假期安排，更好地为广大游客提供参观服务，我馆特对春节期间的开放时间做出如下调整：

**开放时间调整**

- 调整日期：2024年2月10日至2月17日（春节假期）
- 开放时间：每日08:30 - 19:00（延长2小时）
- 停止入场：18:00
- 闭馆时间：除夕（2月9日）全天闭馆

春节期间，我馆将正常开放，届时将有精彩的新春特展等您来参观。为保证良好的参观体验，建议您提前通过官方渠道进行预约。

**温馨提示：**

1. 春节期间参观人数较多，请提前预约
2. 入馆时请主动出示预约二维码及有效证件
3. 请自觉遵守参观秩序，文明观展
4. 馆内禁止吸烟，请爱护文物展品

感谢您对我馆工作的理解与支持，恭祝您新春快乐，阖家幸福！如有疑问，请致电咨询热线：010-8500 7421`,
	},
	{
		ID:       2,
		Tag:      "通知",
		Kind:     "notice",
		Title:    "3月份临时容装制时段参观",
		Summary:  `为确保参观体验，自3月1日起全面实行分时段预约参观制度。请游客朋友们提前在"我馆官网"或小程序上进行预约，人数预计达人数。`,
		Date:     "2024年2月20日",
		Author:   "博物馆管理处",
		Category: "公告通知",
		Body:     `为确保参观体验，自3月1日起全面实行分时段预约参观制度。请游客朋友们提前在"我馆官网"或小程序上进行预约。`,
	},
	{
		ID:       3,
		Tag:      "活动",
		Kind:     "event",
		Title:    "文物保护主题讲座将于开启",
		Summary:  `日常清洁文物修复专业课程"博物馆保护与保修技术"专题讲座将于3月8日在我馆举办，感兴趣的朋友欢迎参加，届时将邀请3月1日至下午2点。`,
		Date:     "2024年2月25日",
		Author:   "博物馆管理处",
		Category: "公告通知",
		Body:     `"博物馆保护与保修技术"专题讲座将于3月8日在我馆举办，感兴趣的朋友欢迎参加。`,
	},
	{
		ID:       4,
		Tag:      "新闻",
		Kind:     "news",
		Title:    "在我馆举办新东韩越郊公营",
		Summary:  "为庆祝成为中央，我馆将于3月5日至3月22日在关闭在B区00进行升级改造，期间可能影响您的观展体验，敬请谅解。",
		Date:     "2024年2月8日",
		Author:   "博物馆管理处",
		Category: "公告通知",
		Body:     "我馆将于3月5日至3月22日对B区进行升级改造，期间可能影响您的观展体验，敬请谅解。",
	},
	{
		ID:       5,
		Tag:      "展览",
		Kind:     "exhibit",
		Title:    "数据艺术展延期至5月底",
		Summary:  "由于观看量不断攀升，应广大观众要求，决定将展期延长至5月31日，欢迎大家持续前来观赏。",
		Date:     "2024年3月15日",
		Author:   "博物馆管理处",
		Category: "公告通知",
		Body:     "应广大观众要求，数据艺术展展期延长至5月31日，欢迎大家持续前来观赏。",
	},
}
