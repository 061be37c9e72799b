package locale

// Key identifies a localized message
type Key int

// Canonical pattern sentences and error messages
const (
	EveryMinute Key = iota
	EveryHour
	EveryDay
	EveryWeek
	EveryMonth
	InvalidExpression
	NoUpcomingRuns

	// Joiners
	FragmentSep
	ListSep
	ListLast
	Or

	// List items inside a list field: %s through %s / every %d from %s through %s
	ItemRange
	ItemStep

	// Clock time when minute and hour are both single values
	AtClock

	MinuteAny
	MinuteSingle
	MinuteRange
	MinuteStep
	MinuteStepFrom
	MinuteList

	HourAny
	HourSingle
	HourRange
	HourStep
	HourStepFrom
	HourList

	DayAny
	DaySingle
	DayRange
	DayStep
	DayStepFrom
	DayList

	MonthSingle
	MonthRange
	MonthStep
	MonthStepFrom
	MonthList

	WeekdaySingle
	WeekdayRange
	WeekdayStep
	WeekdayStepFrom
	WeekdayList
)

// Step templates take (interval, from, through) as %[1]d, %[2]v, %[3]v.
var messages = map[Locale]map[Key]string{
	English: {
		EveryMinute:       "Every minute",
		EveryHour:         "Every hour",
		EveryDay:          "Every day at midnight",
		EveryWeek:         "Every week on Sunday at midnight",
		EveryMonth:        "Every month on the 1st at midnight",
		InvalidExpression: "Invalid cron expression",
		NoUpcomingRuns:    "No upcoming run found",

		FragmentSep: ", ",
		ListSep:     ", ",
		ListLast:    " and ",
		Or:          " or ",

		ItemRange: "%s through %s",
		ItemStep:  "every %[1]d from %[2]s through %[3]s",

		AtClock: "at %02d:%02d",

		MinuteAny:      "every minute",
		MinuteSingle:   "at minute %d",
		MinuteRange:    "every minute from %d through %d",
		MinuteStep:     "every %d minutes",
		MinuteStepFrom: "every %[1]d minutes from minute %[2]d through %[3]d",
		MinuteList:     "at minutes %s",

		HourAny:      "every hour",
		HourSingle:   "during hour %d",
		HourRange:    "between %02d:00 and %02d:59",
		HourStep:     "every %d hours",
		HourStepFrom: "every %[1]d hours from %02[2]d:00 through %02[3]d:00",
		HourList:     "at hours %s",

		DayAny:      "every day",
		DaySingle:   "on day %d of the month",
		DayRange:    "on days %d through %d of the month",
		DayStep:     "every %d days",
		DayStepFrom: "every %[1]d days from day %[2]d through %[3]d of the month",
		DayList:     "on days %s of the month",

		MonthSingle:   "in %s",
		MonthRange:    "from %s through %s",
		MonthStep:     "every %d months",
		MonthStepFrom: "every %[1]d months from %[2]s through %[3]s",
		MonthList:     "in %s",

		WeekdaySingle:   "on %s",
		WeekdayRange:    "on %s through %s",
		WeekdayStep:     "every %d days of the week",
		WeekdayStepFrom: "every %[1]d days of the week from %[2]s through %[3]s",
		WeekdayList:     "on %s",
	},
	Chinese: {
		EveryMinute:       "每分钟",
		EveryHour:         "每小时",
		EveryDay:          "每天午夜",
		EveryWeek:         "每周日午夜",
		EveryMonth:        "每月1日午夜",
		InvalidExpression: "无效的 Cron 表达式",
		NoUpcomingRuns:    "未找到即将执行的时间",

		FragmentSep: "，",
		ListSep:     "、",
		ListLast:    "和",
		Or:          "或",

		ItemRange: "%s至%s",
		ItemStep:  "%[2]s至%[3]s每%[1]d",

		AtClock: "%02d:%02d",

		MinuteAny:      "每分钟",
		MinuteSingle:   "第%d分钟",
		MinuteRange:    "第%d至%d分钟的每分钟",
		MinuteStep:     "每%d分钟",
		MinuteStepFrom: "从第%[2]d分钟到第%[3]d分钟每%[1]d分钟",
		MinuteList:     "第%s分钟",

		HourAny:      "每小时",
		HourSingle:   "%d点",
		HourRange:    "%d点至%d点",
		HourStep:     "每%d小时",
		HourStepFrom: "从%[2]d点到%[3]d点每%[1]d小时",
		HourList:     "%s点",

		DayAny:      "每天",
		DaySingle:   "每月%d日",
		DayRange:    "每月%d日至%d日",
		DayStep:     "每%d天",
		DayStepFrom: "每月%[2]d日至%[3]d日每%[1]d天",
		DayList:     "每月%s日",

		MonthSingle:   "%s",
		MonthRange:    "%s至%s",
		MonthStep:     "每%d个月",
		MonthStepFrom: "%[2]s至%[3]s每%[1]d个月",
		MonthList:     "%s",

		WeekdaySingle:   "%s",
		WeekdayRange:    "%s至%s",
		WeekdayStep:     "每周每隔%d天",
		WeekdayStepFrom: "%[2]s至%[3]s每隔%[1]d天",
		WeekdayList:     "%s",
	},
}

var monthNames = map[Locale][12]string{
	English: {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	Chinese: {"1月", "2月", "3月", "4月", "5月", "6月",
		"7月", "8月", "9月", "10月", "11月", "12月"},
}

var weekdayNames = map[Locale][7]string{
	English: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Chinese: {"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"},
}

// Text returns the message for key in locale l, falling back to English
func Text(l Locale, key Key) string {
	if table, ok := messages[l]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	return messages[English][key]
}

// MonthName returns the localized name of month m (1-12)
func MonthName(l Locale, m int) string {
	names, ok := monthNames[l]
	if !ok {
		names = monthNames[English]
	}
	if m < 1 || m > 12 {
		return ""
	}
	return names[m-1]
}

// WeekdayName returns the localized name of weekday d (0-7, 0 and 7 are Sunday)
func WeekdayName(l Locale, d int) string {
	names, ok := weekdayNames[l]
	if !ok {
		names = weekdayNames[English]
	}
	if d == 7 {
		d = 0
	}
	if d < 0 || d > 6 {
		return ""
	}
	return names[d]
}
