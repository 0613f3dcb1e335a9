package constants

// MessageID names a user-facing message
type MessageID int

const (
	MsgStorageFull MessageID = iota
	MsgComposeFailed
	MsgEditFailed
	MsgReportFailed
	MsgNothingToSummarize
	MsgConfirmDelete
	MsgEmptyInput
	MsgBusy
	MsgUnchanged
)

var messages = map[Locale]map[MessageID]string{
	LocaleZH: {
		MsgStorageFull:        "存储空间已满。为了继续记录，请尝试删除一些旧的记录（图片占用了大量空间）。",
		MsgComposeFailed:      "转化失败，请重试。",
		MsgEditFailed:         "更新失败，请稍后再试",
		MsgReportFailed:       "生成报告失败，请稍后再试",
		MsgNothingToSummarize: "这段时间似乎还没有微光被记录下来...",
		MsgConfirmDelete:      "确定要删除这一天的记忆吗？删除后会释放存储空间。",
		MsgEmptyInput:         "写点什么吧",
		MsgBusy:               "正在生成中，请稍候",
		MsgUnchanged:          "内容没有变化",
	},
	LocaleEN: {
		MsgStorageFull:        "Storage is full. To keep writing, delete some old entries (images take up most of the space).",
		MsgComposeFailed:      "Could not create the entry, please try again.",
		MsgEditFailed:         "Update failed, please try again later.",
		MsgReportFailed:       "Could not generate the report, please try again later.",
		MsgNothingToSummarize: "Nothing has been recorded in this period yet...",
		MsgConfirmDelete:      "Delete the memory of this day? This frees up storage space.",
		MsgEmptyInput:         "Write something first.",
		MsgBusy:               "Still generating, please wait.",
		MsgUnchanged:          "Nothing changed.",
	},
}

// Msg returns the message in locale, falling back to Chinese
func Msg(locale Locale, id MessageID) string {
	if m, ok := messages[locale][id]; ok {
		return m
	}
	return messages[LocaleZH][id]
}
