package cons

// 公告标签（tag），只影响展示分组
const (
	TagNotice = "Notice"
	TagPatch  = "Patch"
	TagEvent  = "Event"
)

// TagLabels 标签对应的站点展示文案
var TagLabels = map[string]string{
	TagNotice: "공지",
	TagPatch:  "패치",
	TagEvent:  "이벤트",
}

// IsValidTag 判断 tag 是否属于封闭枚举
func IsValidTag(tag string) bool {
	_, ok := TagLabels[tag]
	return ok
}

// 通过 /ws 推送给订阅者的事件类型（type）
const (
	EventPreRegistrationCount = "pre_registration.count" // 预约人数变化
	EventNoticeCreated        = "notice.created"
	EventNoticeUpdated        = "notice.updated"
	EventNoticeDeleted        = "notice.deleted"
)
