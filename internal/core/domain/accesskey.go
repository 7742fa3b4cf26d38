package domain

import (
	"errors"
	"time"
)

// AnonymousUser is recorded as LastUsedBy when a key is redeemed without an
// authenticated user.
const AnonymousUser = "anonymous"

var ErrKeyNotFound = errors.New("invalid access key")
var ErrKeyExists = errors.New("this access key already exists")
var ErrKeyInactive = errors.New("this access key is no longer active")
var ErrKeyExpired = errors.New("this access key has expired")
var ErrKeyUsageExceeded = errors.New("this access key has reached its maximum usage limit")

// AccessKey is a redeemable code bound to exactly one course.
//
// CurrentUses is monotonically increasing and, when MaxUses is set, never
// exceeds it. Both nil ExpiryDate and nil MaxUses mean "unlimited".
type AccessKey struct {
	ID          string     `json:"id"`
	Key         string     `json:"key"`
	CourseID    string     `json:"courseId"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	MaxUses     *int       `json:"maxUses"`
	CurrentUses int        `json:"currentUses"`
	IsActive    bool       `json:"isActive"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
	LastUsedBy  string     `json:"lastUsedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Redeemable checks the key's business rules against now, in the order the
// API reports them: active flag, expiry, usage cap. A nil return means the
// key may be consumed.
func (k *AccessKey) Redeemable(now time.Time) error {
	if !k.IsActive {
		return ErrKeyInactive
	}
	if k.ExpiryDate != nil && k.ExpiryDate.Before(now) {
		return ErrKeyExpired
	}
	if k.MaxUses != nil && k.CurrentUses >= *k.MaxUses {
		return ErrKeyUsageExceeded
	}
	return nil
}

// AccessGrant is one append-only audit record per successful redemption.
// Grants are never updated or deleted.
type AccessGrant struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CourseID    string    `json:"courseId"`
	AccessKeyID string    `json:"accessKeyId"`
	AccessKey   string    `json:"accessKey"`
	GrantedAt   time.Time `json:"grantedAt"`
}
