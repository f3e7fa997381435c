package schema

import (
	"strings"
)

// RoleSets 权限规则中使用的角色集合，nil 字段使用默认值
type RoleSets struct {
	OrgAdmin       []string `cfg:"orgAdmin" yaml:"orgAdmin" json:"orgAdmin,omitempty"`
	OrgOwner       []string `cfg:"orgOwner" yaml:"orgOwner" json:"orgOwner,omitempty"`
	WorkspaceAdmin []string `cfg:"workspaceAdmin" yaml:"workspaceAdmin" json:"workspaceAdmin,omitempty"`
	WorkspaceOwner []string `cfg:"workspaceOwner" yaml:"workspaceOwner" json:"workspaceOwner,omitempty"`
}

// DefaultRoleSets 默认角色集合
func DefaultRoleSets() *RoleSets {
	return &RoleSets{
		OrgAdmin:       []string{"owner", "admin"},
		OrgOwner:       []string{"owner"},
		WorkspaceAdmin: []string{"owner", "admin"},
		WorkspaceOwner: []string{"owner"},
	}
}

func (r *RoleSets) withDefaults() *RoleSets {
	out := DefaultRoleSets()
	if r == nil {
		return out
	}
	if r.OrgAdmin != nil {
		out.OrgAdmin = r.OrgAdmin
	}
	if r.OrgOwner != nil {
		out.OrgOwner = r.OrgOwner
	}
	if r.WorkspaceAdmin != nil {
		out.WorkspaceAdmin = r.WorkspaceAdmin
	}
	if r.WorkspaceOwner != nil {
		out.WorkspaceOwner = r.WorkspaceOwner
	}
	return out
}

// TableSet 表名集合，nil 集合视为包含所有表
type TableSet map[string]struct{}

// NewTableSet 创建表名集合
func NewTableSet(names ...string) TableSet {
	set := make(TableSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s TableSet) Has(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s[name]
	return ok
}

type ruleFunc func(has func(string) bool, roles *RoleSets) string

var rules = map[string]ruleFunc{
	"user":                userRule,
	"session":             ownedByUserRule,
	"account":             ownedByUserRule,
	"passkey":             ownedByUserRule,
	"verification":        verificationRule,
	"team":                teamRule,
	"teamMember":          teamMemberRule,
	"organization":        organizationRule,
	"member":              memberRule,
	"invitation":          invitationRule,
	"workspace":           workspaceRule,
	"workspaceMember":     workspaceMemberRule,
	"workspaceTeamMember": workspaceMemberRule,
}

// Permissions 表的行级权限子句，没有规则时返回空字符串
// available 为参与本次生成的表，协作表缺失时对应的子句被省略
func Permissions(table string, available TableSet, roles *RoleSets) string {
	rule, ok := rules[table]
	if !ok {
		return ""
	}
	return rule(available.Has, roles.withDefaults())
}

// inList 渲染角色列表字面量，角色名中的单引号被转义
func inList(roles []string) string {
	items := make([]string, len(roles))
	for i, role := range roles {
		items[i] = "'" + strings.ReplaceAll(role, "'", `\'`) + "'"
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func orgAdminCond(roles *RoleSets) string {
	return "organizationId IN (SELECT organizationId FROM member WHERE userId = $auth.id AND role IN " + inList(roles.OrgAdmin) + ")"
}

// rule 多行权限子句，只有 PERMISSIONS 行时返回空字符串
type rule []string

func newRule() rule {
	return rule{"PERMISSIONS"}
}

func (r rule) String() string {
	if len(r) <= 1 {
		return ""
	}
	return strings.Join(r, "\n")
}

func userRule(has func(string) bool, roles *RoleSets) string {
	return "PERMISSIONS FOR select, update WHERE id = $auth.id"
}

func ownedByUserRule(has func(string) bool, roles *RoleSets) string {
	return "PERMISSIONS FOR select WHERE userId = $auth.id FOR create, update, delete WHERE userId = $auth.id"
}

func verificationRule(has func(string) bool, roles *RoleSets) string {
	return "PERMISSIONS FOR select WHERE identifier = $auth.email FOR create, update, delete WHERE identifier = $auth.email"
}

func teamRule(has func(string) bool, roles *RoleSets) string {
	r := newRule()
	var selects []string
	if has("teamMember") {
		selects = append(selects, "  FOR select WHERE id IN (SELECT teamId FROM teamMember WHERE userId = $auth.id)")
	}
	if has("member") {
		cond := orgAdminCond(roles)
		if len(selects) > 0 {
			selects = append(selects, "    OR "+cond)
		} else {
			selects = append(selects, "  FOR select WHERE "+cond)
		}
		r = append(r, selects...)
		r = append(r, "  FOR create WHERE "+cond, "  FOR update, delete WHERE "+cond)
	} else {
		r = append(r, selects...)
	}
	return r.String()
}

func teamMemberRule(has func(string) bool, roles *RoleSets) string {
	r := newRule()
	canSeeOwnTeam := has("teamMember")
	if canSeeOwnTeam {
		r = append(r, "  FOR select WHERE teamId IN (SELECT teamId FROM teamMember WHERE userId = $auth.id)")
	}
	if has("team") && has("member") {
		cond := "teamId IN (SELECT id FROM team WHERE " + orgAdminCond(roles) + ")"
		if canSeeOwnTeam {
			r = append(r, "    OR "+cond)
		} else {
			r = append(r, "  FOR select WHERE "+cond)
		}
		r = append(r, "  FOR create, update, delete WHERE "+cond)
	}
	return r.String()
}

func organizationRule(has func(string) bool, roles *RoleSets) string {
	r := newRule()
	if has("member") {
		r = append(r,
			"  FOR select WHERE id IN (SELECT organizationId FROM member WHERE userId = $auth.id)",
			"  FOR update, delete WHERE id IN (SELECT organizationId FROM member WHERE userId = $auth.id AND role IN "+inList(roles.OrgAdmin)+")",
		)
	}
	// 任何已认证身份都可以创建组织
	r = append(r, "  FOR create WHERE $auth.id != null")
	return r.String()
}

func memberRule(has func(string) bool, roles *RoleSets) string {
	r := newRule()
	r = append(r, "  FOR select WHERE userId = $auth.id")
	if has("member") {
		cond := orgAdminCond(roles)
		r = append(r, "    OR "+cond, "  FOR create, update, delete WHERE "+cond)
	}
	return r.String()
}

func invitationRule(has func(string) bool, roles *RoleSets) string {
	r := newRule()
	r = append(r, "  FOR select WHERE email = $auth.email")
	if has("member") {
		cond := orgAdminCond(roles)
		r = append(r, "    OR "+cond, "  FOR create, update, delete WHERE "+cond)
	}
	return r.String()
}

func workspaceRule(has func(string) bool, roles *RoleSets) string {
	r := newRule()
	hasMember := has("member")
	hasWorkspaceMember := has("workspaceMember")

	if hasMember {
		r = append(r, "  FOR select WHERE organizationId IN (SELECT organizationId FROM member WHERE userId = $auth.id)")
	}
	if hasWorkspaceMember {
		if hasMember {
			r = append(r, "    OR id IN (SELECT workspaceId FROM workspaceMember WHERE userId = $auth.id)")
		} else {
			r = append(r, "  FOR select WHERE id IN (SELECT workspaceId FROM workspaceMember WHERE userId = $auth.id)")
		}
	}

	if hasMember {
		cond := orgAdminCond(roles)
		r = append(r, "  FOR create WHERE "+cond, "  FOR update WHERE "+cond)
	}
	if hasWorkspaceMember {
		r = append(r, "    OR id IN (SELECT workspaceId FROM workspaceMember WHERE userId = $auth.id AND role IN "+inList(roles.WorkspaceAdmin)+")")
	}
	if hasMember {
		r = append(r, "  FOR delete WHERE "+orgAdminCond(roles))
	}
	if hasWorkspaceMember {
		r = append(r, "    OR id IN (SELECT workspaceId FROM workspaceMember WHERE userId = $auth.id AND role IN "+inList(roles.WorkspaceOwner)+")")
	}
	return r.String()
}

// workspaceMemberRule workspaceMember 与 workspaceTeamMember 共用
func workspaceMemberRule(has func(string) bool, roles *RoleSets) string {
	r := newRule()
	if has("workspaceMember") {
		r = append(r, "  FOR select WHERE workspaceId IN (SELECT workspaceId FROM workspaceMember WHERE userId = $auth.id)")
	}
	if has("workspace") && has("member") {
		r = append(r,
			"  FOR create, update, delete WHERE workspaceId IN (",
			"      SELECT id FROM workspace WHERE organizationId IN (",
			"        SELECT organizationId FROM member WHERE userId = $auth.id AND role IN "+inList(roles.OrgAdmin),
			"      )",
			"    )",
		)
	}
	if has("workspaceMember") {
		r = append(r, "    OR workspaceId IN (SELECT workspaceId FROM workspaceMember WHERE userId = $auth.id AND role IN "+inList(roles.WorkspaceAdmin)+")")
	}
	return r.String()
}
