package service

import "strings"

// AdminPolicy 管理员判定：进程启动时从配置构造一次，之后只读。
// 按 session 的已验证邮箱做精确匹配（区分大小写）。
type AdminPolicy struct {
	emails map[string]struct{}
}

// NewAdminPolicy 由邮箱列表构造，条目会去除首尾空白，空条目被忽略。
func NewAdminPolicy(emails []string) *AdminPolicy {
	p := &AdminPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		p.emails[e] = struct{}{}
	}
	return p
}

// ParseAdminPolicy 解析逗号分隔的 ADMIN_EMAILS。
func ParseAdminPolicy(csv string) *AdminPolicy {
	return NewAdminPolicy(strings.Split(csv, ","))
}

// IsAdmin 邮箱为空时恒为 false。
func (p *AdminPolicy) IsAdmin(email string) bool {
	if p == nil {
		return false
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, ok := p.emails[email]
	return ok
}

// Size 白名单条目数
func (p *AdminPolicy) Size() int {
	if p == nil {
		return 0
	}
	return len(p.emails)
}
