package domain

import "time"

type Branch struct {
	ID         string
	BranchCode string
	BranchName string
	City       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
