// Package menu holds the menu-item configuration values shared by carts and
// orders: customization groups, selected options, and the canonical form used
// to decide whether two configurations of the same menu item are equivalent.
package menu

import (
	"fmt"
	"sort"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Option is a single selectable choice inside a customization group,
// e.g. "Extra cheese" for +1.50.
type Option struct {
	Name  string
	Price float64
}

// Validate checks the option carries a name and a non-negative price.
func (o Option) Validate() error {
	if o.Name == "" {
		return errs.NewValueIsRequiredError("option name")
	}
	if o.Price < 0 {
		return errs.NewValueIsInvalidError("option price")
	}
	return nil
}

// Customization is one named group of selected options, e.g.
// {GroupName: "Toppings", SelectedOptions: [Mushrooms, Extra cheese]}.
type Customization struct {
	GroupName       string
	SelectedOptions []Option
}

// Validate checks the group name and every selected option.
func (c Customization) Validate() error {
	if c.GroupName == "" {
		return errs.NewValueIsRequiredError("customization group name")
	}
	for _, opt := range c.SelectedOptions {
		if err := opt.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCustomizations validates a whole customization set.
func ValidateCustomizations(customizations []Customization) error {
	for _, c := range customizations {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CanonicalKey derives an order-independent identity for one configuration of
// a menu item. Groups are sorted by name and options within each group are
// sorted by name and price, so two selections that differ only in internal
// ordering produce the same key. Line items in a cart merge when their keys
// match.
func CanonicalKey(menuItemID kernel.UUID, customizations []Customization) string {
	groups := make([]string, 0, len(customizations))
	for _, c := range customizations {
		options := make([]string, 0, len(c.SelectedOptions))
		for _, opt := range c.SelectedOptions {
			options = append(options, fmt.Sprintf("%s=%.2f", opt.Name, opt.Price))
		}
		sort.Strings(options)
		groups = append(groups, fmt.Sprintf("%s:[%s]", c.GroupName, strings.Join(options, ",")))
	}
	sort.Strings(groups)

	return fmt.Sprintf("%s|%s", menuItemID, strings.Join(groups, ";"))
}

// CloneCustomizations deep-copies a customization set so aggregates can hand
// out snapshots without sharing backing arrays.
func CloneCustomizations(customizations []Customization) []Customization {
	if customizations == nil {
		return nil
	}

	cloned := make([]Customization, len(customizations))
	for i, c := range customizations {
		options := make([]Option, len(c.SelectedOptions))
		copy(options, c.SelectedOptions)
		cloned[i] = Customization{GroupName: c.GroupName, SelectedOptions: options}
	}
	return cloned
}
