package domain

// Visibility controls whether an object can be read without authorization.
type Visibility string

const (
	// VisibilityPublic objects are readable by anyone, including anonymous
	// requesters. Writes still require an authorized identity.
	VisibilityPublic Visibility = "public"

	// VisibilityPrivate objects require a requester whose relationship to
	// the policy covers the requested permission.
	VisibilityPrivate Visibility = "private"
)

// Permission is an operation a requester may be allowed on an object.
type Permission string

const (
	// PermissionRead allows downloading the object.
	PermissionRead Permission = "read"
	// PermissionWrite allows replacing or deleting the object.
	PermissionWrite Permission = "write"
)

// RuleKind discriminates the closed set of access rule variants.
type RuleKind string

const (
	// RuleOwner grants the policy owner every permission.
	RuleOwner RuleKind = "owner"
	// RuleGrant grants a specific requester an explicit permission set.
	RuleGrant RuleKind = "grant"
)

// AccessRule is one entry of an access policy. The Kind field selects the
// variant; GranteeID and Permissions are meaningful only for RuleGrant.
type AccessRule struct {
	Kind        RuleKind     `json:"kind"`
	GranteeID   string       `json:"grantee_id,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// HasPermission reports whether the rule's permission set covers perm.
func (r AccessRule) HasPermission(perm Permission) bool {
	for _, p := range r.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// AccessPolicy is the authorization document attached to a stored object.
// It is set once at upload time from the uploading caller's context, read on
// every access request, and deleted together with the object.
type AccessPolicy struct {
	Owner      string       `json:"owner"`
	Visibility Visibility   `json:"visibility"`
	Rules      []AccessRule `json:"rules"`
}

// NewPrivatePolicy returns the default owner-only policy for a private object.
func NewPrivatePolicy(owner string) AccessPolicy {
	return AccessPolicy{
		Owner:      owner,
		Visibility: VisibilityPrivate,
		Rules:      []AccessRule{{Kind: RuleOwner}},
	}
}

// NewPublicPolicy returns a policy for a publicly readable object. The owner
// keeps write access through the owner rule.
func NewPublicPolicy(owner string) AccessPolicy {
	return AccessPolicy{
		Owner:      owner,
		Visibility: VisibilityPublic,
		Rules:      []AccessRule{{Kind: RuleOwner}},
	}
}

// Grant appends an explicit grant rule for a requester.
func (p *AccessPolicy) Grant(granteeID string, perms ...Permission) {
	p.Rules = append(p.Rules, AccessRule{
		Kind:        RuleGrant,
		GranteeID:   granteeID,
		Permissions: perms,
	})
}

// Allows evaluates the policy for a requester and permission.
//
// A public object is always readable. Everything else requires a non-empty
// requester identity matched by a rule: the owner rule covers the policy
// owner for all permissions; a grant rule covers its grantee for the listed
// permissions. No match means deny.
func (p AccessPolicy) Allows(requesterID string, perm Permission) bool {
	if p.Visibility == VisibilityPublic && perm == PermissionRead {
		return true
	}
	if requesterID == "" {
		return false
	}

	for _, rule := range p.Rules {
		switch rule.Kind {
		case RuleOwner:
			if requesterID == p.Owner {
				return true
			}
		case RuleGrant:
			if requesterID == rule.GranteeID && rule.HasPermission(perm) {
				return true
			}
		}
	}
	return false
}
