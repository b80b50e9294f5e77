// Package org holds the static department directory and viewer roles.
package org

import (
	"errors"
	"fmt"
)

// UnitID identifies an organisational unit: a department or the whole company.
type UnitID string

// All is the whole-company sentinel.
const All UnitID = "all"

// AllName is the display name of the whole company.
const AllName = "全公司"

// Department is an entry of the directory.
type Department struct {
	ID   UnitID
	Name string
}

// Departments is the fixed department directory.
var Departments = []Department{
	{ID: "rd1", Name: "研發一部"},
	{ID: "rd2", Name: "研發二部"},
	{ID: "sales1", Name: "業務一課"},
	{ID: "cs", Name: "客服中心"},
	{ID: "admin", Name: "管理部"},
}

// Role is the viewer's perspective.
type Role string

const (
	RoleGM      Role = "gm"
	RoleManager Role = "manager"
)

// ManagedUnit is the department a department manager is pinned to.
const ManagedUnit UnitID = "rd1"

var (
	// ErrUnknownUnit indicates a unit id outside the directory.
	ErrUnknownUnit = errors.New("org: unknown unit")
	// ErrUnknownRole indicates a role outside the enumeration.
	ErrUnknownRole = errors.New("org: unknown role")
)

// ParseRole converts raw input into a Role.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleGM, RoleManager:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
}

// Label returns the caption shown in the unit selector.
func (r Role) Label() string {
	if r == RoleManager {
		return "部門主管"
	}
	return "總經理視角"
}

// ParseUnit converts raw input into a known UnitID.
func ParseUnit(raw string) (UnitID, error) {
	id := UnitID(raw)
	if !Valid(id) {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, raw)
	}
	return id, nil
}

// Valid reports whether id is All or a department of the directory.
func Valid(id UnitID) bool {
	if id == All {
		return true
	}
	_, ok := Lookup(id)
	return ok
}

// Lookup finds a department by id.
func Lookup(id UnitID) (Department, bool) {
	for _, d := range Departments {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// DisplayName returns the unit's name, AllName for the sentinel and an empty
// string for unknown ids.
func DisplayName(id UnitID) string {
	if id == All {
		return AllName
	}
	d, _ := Lookup(id)
	return d.Name
}

// UnitFor returns the unit a role starts with.
func UnitFor(r Role) UnitID {
	if r == RoleManager {
		return ManagedUnit
	}
	return All
}
