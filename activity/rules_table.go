package activity

// Browser process matchers shared by every browser-family rule.
var browserProcs = []string{
	`chrome\.exe`, `msedge\.exe`, `firefox\.exe`, `safari\.app`, `brave\.exe`,
}

// builtinRules returns the bundled rule table in declaration order.
//
// The table is authored with overlapping matchers on purpose: broad
// catch-alls (the priority-10 steam rule, the priority-5 browser rule with
// a `.*` title matcher) sit below dozens of specific rules for the same
// process family. Priority values are hand-tuned and carried over from the
// production table; do not renumber or "clean up" the overlaps.
func builtinRules() []Rule {
	return []Rule{
		// Games (high priority)
		{
			ProcessMatchers:     procs(`wutheringwaves\.exe`, `wwlauncher\.exe`),
			TitleMatchers:       titles(`wuthering waves`, `鸣潮`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing Wuthering Waves",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			ProcessMatchers:     procs(`tslgame\.exe`),
			TitleMatchers:       titles(`playerunknown's battlegrounds`, `pubg`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing PUBG",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			ProcessMatchers:     procs(`discovery\.exe`),
			TitleMatchers:       titles(`the finals`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing THE FINALS",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			// Wuthering Waves ships as Client-Win64-Shipping.exe on some platforms.
			ProcessMatchers:     procs(`genshinimpact\.exe`, `yuanshen\.exe`, `client-win64-shipping\.exe`),
			TitleMatchers:       titles(`genshin impact`, `原神`, `鸣潮`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing Wuthering Waves",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			ProcessMatchers:     procs(`\btloupart1\.exe\b`),
			TitleMatchers:       titles(`the last of us part i`, `最后生还者第一部`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing The Last of Us",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			ProcessMatchers:     procs(`cyberpunk2077\.exe`),
			TitleMatchers:       titles(`cyberpunk 2077`, `赛博朋克2077`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing Cyberpunk 2077",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			ProcessMatchers:     procs(`javaw\.exe`, `minecraftlauncher\.exe`),
			TitleMatchers:       titles(`minecraft\b`, `我的世界`),
			Type:                TypeGaming,
			SubType:             SubGamingCasual,
			DescriptionTemplate: "Playing Minecraft",
			Intensity:           LevelMedium,
			Priority:            99,
		},
		{
			ProcessMatchers:     procs(`palworld-win64-shipping\.exe`),
			TitleMatchers:       titles(`palworld`, `幻兽帕鲁`),
			Type:                TypeGaming,
			SubType:             SubGamingCasual,
			DescriptionTemplate: "Playing Palworld",
			Intensity:           LevelMedium,
			Priority:            99,
		},
		{
			ProcessMatchers:     procs(`witcher3\.exe`),
			TitleMatchers:       titles(`the witcher 3`, `巫师3`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing The Witcher 3",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			ProcessMatchers:     procs(`rdr2\.exe`),
			TitleMatchers:       titles(`red dead redemption 2`, `荒野大镖客2`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing Red Dead Redemption 2",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			ProcessMatchers:     procs(`gta5\.exe`),
			TitleMatchers:       titles(`grand theft auto v`, `侠盗猎车手5`),
			Type:                TypeGaming,
			SubType:             SubGamingIntense,
			DescriptionTemplate: "Playing GTA V",
			Intensity:           LevelHigh,
			Priority:            100,
		},
		{
			// Catch-all for anything launched through Steam. Sits far below
			// the specific game rules so they win whenever a title matches.
			ProcessMatchers:     procs(`steam\.exe`),
			TitleMatchers:       titles(`\b(game|play|level|steam)\b`),
			Type:                TypeGaming,
			SubType:             SubGamingCasual,
			DescriptionTemplate: "Playing something, hard to tell what",
			Intensity:           LevelMedium,
			Priority:            10,
		},

		// Development tools
		{
			ProcessMatchers:     procs(`code\.exe`, `code - insiders\.exe`),
			TitleMatchers:       titles(`visual studio code`, `\.(js|ts|py|java|kt|go|rs|html|css|scss|json|md|xml|gradle|dockerfile|yaml|yml)\b`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "using VS Code",
			FocusLevel:          LevelHigh,
			Priority:            90,
		},
		{
			ProcessMatchers:     procs(`cursor\.exe`),
			TitleMatchers:       titles(`cursor`, `\.(js|ts|py|java|kt|go|rs|html|css|scss|json|md|xml|gradle|dockerfile|yaml|yml)\b`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "using Cursor",
			FocusLevel:          LevelHigh,
			Priority:            91,
		},
		{
			ProcessMatchers:     procs(`studio64\.exe`, `androidstudio64\.exe`),
			TitleMatchers:       titles(`android studio`, `manifest\.xml`, `\.(kt|java|xml)\b`),
			Type:                TypeWorking,
			SubType:             SubAndroidDevelopment,
			DescriptionTemplate: "using Android Studio",
			FocusLevel:          LevelHigh,
			Priority:            95,
		},
		{
			ProcessMatchers:     procs(`idea64\.exe`, `pycharm64\.exe`, `webstorm64\.exe`, `goland64\.exe`, `clion64\.exe`, `rubymine64\.exe`, `phpstorm64\.exe`, `datagrip64\.exe`),
			TitleMatchers:       titles(`intellij idea`, `pycharm`, `webstorm`, `goland`, `clion`, `rubymine`, `phpstorm`, `datagrip`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "using a JetBrains IDE",
			FocusLevel:          LevelHigh,
			Priority:            92,
		},
		{
			ProcessMatchers:     procs(`zed\.exe`),
			TitleMatchers:       titles(`zed`, `\.(rs|js|ts|py|go|md)\b`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "using Zed",
			FocusLevel:          LevelHigh,
			Priority:            89,
		},
		{
			ProcessMatchers:     procs(`sublime_text\.exe`),
			TitleMatchers:       titles(`sublime text`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "using Sublime Text",
			FocusLevel:          LevelMedium,
			Priority:            88,
		},
		{
			ProcessMatchers:     procs(`atom\.exe`),
			TitleMatchers:       titles(`atom`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "using Atom",
			FocusLevel:          LevelMedium,
			Priority:            87,
		},
		{
			ProcessMatchers:     procs(`devenv\.exe`),
			TitleMatchers:       titles(`microsoft visual studio`, `\.(cs|vb|cpp|fs)\b`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "using Visual Studio",
			FocusLevel:          LevelHigh,
			Priority:            90,
		},
		{
			ProcessMatchers:     procs(`xcode\.app`),
			TitleMatchers:       titles(`xcode`, `\.(swift|m|h|storyboard|xib)\b`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "using Xcode",
			FocusLevel:          LevelHigh,
			Priority:            90,
		},
		{
			ProcessMatchers:     procs(`unity\.exe`),
			TitleMatchers:       titles(`unity`, `game scene`),
			Type:                TypeWorking,
			SubType:             SubDesigningUIUX,
			DescriptionTemplate: "using Unity",
			FocusLevel:          LevelHigh,
			Priority:            85,
		},
		{
			ProcessMatchers:     procs(`unrealeditor\.exe`),
			TitleMatchers:       titles(`unreal editor`, `blueprint`),
			Type:                TypeWorking,
			SubType:             SubDesigningUIUX,
			DescriptionTemplate: "using Unreal Engine",
			FocusLevel:          LevelHigh,
			Priority:            85,
		},
		{
			ProcessMatchers:     procs(`postman\.exe`),
			TitleMatchers:       titles(`postman`, `request`, `collection`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "testing APIs in Postman",
			FocusLevel:          LevelMedium,
			Priority:            80,
		},
		{
			ProcessMatchers:     procs(`figma\.exe`, `sketch\.app`),
			TitleMatchers:       titles(`figma`, `sketch`, `untitled design`),
			Type:                TypeWorking,
			SubType:             SubDesigningUIUX,
			DescriptionTemplate: "doing UI/UX design",
			FocusLevel:          LevelHigh,
			Priority:            80,
		},

		// Browsers (refined by title)
		{
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`chatgpt`, `openai\.com`),
			Type:                TypeAIInteraction,
			SubType:             SubAIChattingAssistant,
			DescriptionTemplate: "chatting with ChatGPT",
			FocusLevel:          LevelMedium,
			Priority:            75,
		},
		{
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`gemini\.google\.com`, `bard\.google\.com`),
			Type:                TypeAIInteraction,
			SubType:             SubAIChattingAssistant,
			DescriptionTemplate: "chatting with Gemini",
			FocusLevel:          LevelMedium,
			Priority:            75,
		},
		{
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`aistudio\.google\.com`, `google ai studio`),
			Type:                TypeAIInteraction,
			SubType:             SubAIChattingAssistant,
			DescriptionTemplate: "using Google AI Studio",
			FocusLevel:          LevelMedium,
			Priority:            75,
		},
		{
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`bilibili\.com`, `哔哩哔哩`, `youtube\.com`, `youtu\.be`),
			Type:                TypeEntertainment,
			SubType:             SubWatchingShortVideo,
			DescriptionTemplate: "watching short videos",
			FocusLevel:          LevelLow,
			Priority:            70,
		},
		{
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`stackoverflow\.com`, `github\.com`, `developer\.mozilla\.org`, `medium\.com/.*(programming|develop|code|software)`, `\.dev\b`, `掘金`, `csdn`, `segmentfault`, `v2ex\.com`),
			Type:                TypeLearning,
			SubType:             SubLearningReadingDocs,
			DescriptionTemplate: "reading technical articles",
			FocusLevel:          LevelHigh,
			Priority:            78,
		},
		{
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`coursera\.org`, `udemy\.com`, `edx\.org`, `khanacademy\.org`, `中国大学mooc`, `学堂在线`, `网易公开课`, `freecodecamp\.org`),
			Type:                TypeLearning,
			SubType:             SubLearningVideoCourse,
			DescriptionTemplate: "taking an online course",
			FocusLevel:          LevelHigh,
			Priority:            77,
		},
		{
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`微博`, `twitter\.com`, `facebook\.com`, `instagram\.com`, `知乎`, `豆瓣`, `reddit\.com`),
			Type:                TypeSocial,
			SubType:             SubBrowsingSocialMedia,
			DescriptionTemplate: "scrolling social media",
			FocusLevel:          LevelLow,
			Priority:            60,
		},
		{
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`淘宝`, `tmall`, `京东`, `jd\.com`, `amazon`, `pinduoduo`),
			Type:                TypeBrowsing,
			SubType:             SubBrowsingShopping,
			DescriptionTemplate: "shopping online",
			FocusLevel:          LevelLow,
			Priority:            50,
		},
		{
			// Fallback for any browser window: fires only when nothing
			// above claimed the title.
			ProcessMatchers:     procs(browserProcs...),
			TitleMatchers:       titles(`.*`),
			Type:                TypeBrowsing,
			SubType:             SubBrowsingGeneral,
			DescriptionTemplate: "browsing the web",
			FocusLevel:          LevelLow,
			Priority:            5,
		},

		// Chat and meetings
		{
			ProcessMatchers:     procs(`wechat\.exe`, `weixin\.exe`),
			TitleMatchers:       titles(`微信`),
			Type:                TypeSocial,
			SubType:             SubChattingIM,
			DescriptionTemplate: "chatting on WeChat",
			FocusLevel:          LevelMedium,
			Priority:            65,
		},
		{
			ProcessMatchers:     procs(`qq\.exe`),
			TitleMatchers:       titles(`qq`, `腾讯qq`),
			Type:                TypeSocial,
			SubType:             SubChattingIM,
			DescriptionTemplate: "chatting on QQ",
			FocusLevel:          LevelMedium,
			Priority:            64,
		},
		{
			ProcessMatchers:     procs(`dingtalk\.exe`),
			TitleMatchers:       titles(`钉钉`, `会议`, `直播`),
			Type:                TypeMeeting,
			SubType:             SubMeetingOnlineConference,
			DescriptionTemplate: "on DingTalk",
			FocusLevel:          LevelMedium,
			Priority:            70,
		},
		{
			ProcessMatchers:     procs(`slack\.exe`),
			TitleMatchers:       titles(`slack`),
			Type:                TypeWorking,
			SubType:             SubChattingIM,
			DescriptionTemplate: "catching up on Slack",
			FocusLevel:          LevelMedium,
			Priority:            72,
		},
		{
			ProcessMatchers:     procs(`discord\.exe`),
			TitleMatchers:       titles(`discord`),
			Type:                TypeSocial,
			SubType:             SubVoiceVideoCall,
			DescriptionTemplate: "on Discord",
			FocusLevel:          LevelMedium,
			Priority:            68,
		},
		{
			ProcessMatchers:     procs(`zoom\.exe`, `vmwarezoom\.exe`),
			TitleMatchers:       titles(`zoom`, `会议`, `meeting`),
			Type:                TypeMeeting,
			SubType:             SubMeetingOnlineConference,
			DescriptionTemplate: "in a Zoom meeting",
			FocusLevel:          LevelHigh,
			Priority:            76,
		},
		{
			ProcessMatchers:     procs(`teams\.exe`),
			TitleMatchers:       titles(`microsoft teams`, `会议`, `call`),
			Type:                TypeMeeting,
			SubType:             SubMeetingOnlineConference,
			DescriptionTemplate: "in a Teams meeting or call",
			FocusLevel:          LevelHigh,
			Priority:            76,
		},
		{
			ProcessMatchers:     procs(`chrome\.exe`, `msedge\.exe`, `firefox\.exe`),
			TitleMatchers:       titles(`meet\.google\.com`, `正在通话`, `会议中`),
			Type:                TypeMeeting,
			SubType:             SubMeetingOnlineConference,
			DescriptionTemplate: "in a Google Meet meeting",
			FocusLevel:          LevelHigh,
			Priority:            77,
		},
		{
			ProcessMatchers:     procs(`applicationframehost\.exe`),
			TitleMatchers:       titles(`unigram`),
			Type:                TypeSocial,
			SubType:             SubChattingIM,
			DescriptionTemplate: "chatting on Unigram",
			FocusLevel:          LevelMedium,
			Priority:            65,
		},

		// Media players
		{
			ProcessMatchers:     procs(`cloudmusic\.exe`, `neteasecloudmusic\.exe`),
			TitleMatchers:       titles(`网易云音乐`),
			Type:                TypeEntertainment,
			SubType:             SubListeningMusic,
			DescriptionTemplate: "listening to NetEase Cloud Music",
			FocusLevel:          LevelLow,
			Priority:            55,
		},
		{
			ProcessMatchers:     procs(`qqmusic\.exe`),
			TitleMatchers:       titles(`qq音乐`),
			Type:                TypeEntertainment,
			SubType:             SubListeningMusic,
			DescriptionTemplate: "listening to QQ Music",
			FocusLevel:          LevelLow,
			Priority:            54,
		},
		{
			ProcessMatchers:     procs(`spotify\.exe`),
			TitleMatchers:       titles(`spotify`),
			Type:                TypeEntertainment,
			SubType:             SubListeningMusic,
			DescriptionTemplate: "listening to Spotify",
			FocusLevel:          LevelLow,
			Priority:            56,
		},
		{
			ProcessMatchers:     procs(`potplayer.*\.exe`),
			TitleMatchers:       titles(`\.(mkv|mp4|avi|rmvb|flv|mov)\b`),
			Type:                TypeEntertainment,
			SubType:             SubWatchingMovieSeries,
			DescriptionTemplate: "watching a video in PotPlayer",
			FocusLevel:          LevelLow,
			Priority:            60,
		},
		{
			// Course material in PotPlayer outranks the movie rule above.
			ProcessMatchers:     procs(`potplayer.*\.exe`),
			TitleMatchers:       titles(`教程`, `课程`, `教学`, `lesson`, `course`, `tutorial`),
			Type:                TypeLearning,
			SubType:             SubLearningVideoCourse,
			DescriptionTemplate: "watching a course video in PotPlayer",
			FocusLevel:          LevelMedium,
			Priority:            62,
		},
		{
			ProcessMatchers:     procs(`vlc\.exe`),
			TitleMatchers:       titles(`\.(mkv|mp4|avi|rmvb|flv|mov)\b`),
			Type:                TypeEntertainment,
			SubType:             SubWatchingMovieSeries,
			DescriptionTemplate: "watching a video in VLC",
			FocusLevel:          LevelLow,
			Priority:            59,
		},

		// Notes and knowledge management
		{
			ProcessMatchers:     procs(`obsidian\.exe`),
			TitleMatchers:       titles(`obsidian`, `\.md\b`),
			Type:                TypeNoteTaking,
			SubType:             SubNoteTakingOrganizing,
			DescriptionTemplate: "taking notes in Obsidian",
			FocusLevel:          LevelMedium,
			Priority:            70,
		},
		{
			ProcessMatchers:     procs(`notion\.exe`),
			TitleMatchers:       titles(`notion`),
			Type:                TypePlanning,
			SubType:             SubPlanningTaskManagement,
			DescriptionTemplate: "organizing in Notion",
			FocusLevel:          LevelMedium,
			Priority:            71,
		},
		{
			ProcessMatchers:     procs(`typora\.exe`),
			TitleMatchers:       titles(`typora`, `\.md\b`),
			Type:                TypeNoteTaking,
			SubType:             SubWritingDocs,
			DescriptionTemplate: "writing docs in Typora",
			FocusLevel:          LevelMedium,
			Priority:            69,
		},
		{
			ProcessMatchers:     procs(`evernote\.exe`, `yinxiang\.exe`),
			TitleMatchers:       titles(`evernote`, `印象笔记`),
			Type:                TypeNoteTaking,
			SubType:             SubNoteTakingQuick,
			DescriptionTemplate: "jotting notes in Evernote",
			FocusLevel:          LevelMedium,
			Priority:            68,
		},

		// System and other
		{
			ProcessMatchers:     procs(`explorer\.exe`),
			TitleMatchers:       titles(`.*`),
			Type:                TypeBrowsing,
			SubType:             SubBrowsingGeneral,
			DescriptionTemplate: "managing files",
			FocusLevel:          LevelLow,
			Priority:            20,
		},
		{
			ProcessMatchers:     procs(`.*`),
			TitleMatchers:       titles(`编译`, `compile`, `building`, `打包`),
			Type:                TypeSystemTask,
			SubType:             SubSystemCompiling,
			DescriptionTemplate: "compiling a program",
			FocusLevel:          LevelLow,
			Priority:            30,
		},
		{
			ProcessMatchers:     procs(`code\.exe`, `sublime_text\.exe`, `atom\.exe`, `devenv\.exe`, `xcode\.app`, `zed\.exe`, `cursor\.exe`, `terminal`, `cmd`, `powershell`),
			TitleMatchers:       titles(`\\.(js|ts|jsx|tsx|py|java|kt|go|rs|html|css|scss|json|md|xml|gradle|dockerfile|yaml|yml|c|cpp|rb|php|sql)\\b`),
			Type:                TypeWorking,
			SubType:             SubCodingActive,
			DescriptionTemplate: "writing code",
			FocusLevel:          LevelHigh,
			Priority:            85,
		},
	}
}
