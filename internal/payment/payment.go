package payment

import (
	"strings"
	"time"
)

// Type classifies how a method is settled.
type Type string

const (
	TypeCard     Type = "card"
	TypeTransfer Type = "transfer"
	TypeCash     Type = "cash"
	TypeWallet   Type = "wallet"
	TypeCustom   Type = "custom"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCard, TypeTransfer, TypeCash, TypeWallet, TypeCustom:
		return true
	}
	return false
}

// Method is one entry of the checkout payment catalogue. RequiresReference
// makes the transfer reference mandatory at checkout.
type Method struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	NameAr            string    `json:"nameAr"`
	Description       *string   `json:"description,omitempty"`
	DescriptionAr     *string   `json:"descriptionAr,omitempty"`
	Icon              *string   `json:"icon,omitempty"`
	Type              Type      `json:"type"`
	Instructions      *string   `json:"instructions,omitempty"`
	InstructionsAr    *string   `json:"instructionsAr,omitempty"`
	RequiresReference bool      `json:"requiresReference"`
	Active            bool      `json:"active"`
	SortOrder         int       `json:"sortOrder"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type Input struct {
	Name              string  `json:"name"`
	NameAr            string  `json:"nameAr"`
	Description       *string `json:"description"`
	DescriptionAr     *string `json:"descriptionAr"`
	Icon              *string `json:"icon"`
	Type              Type    `json:"type"`
	Instructions      *string `json:"instructions"`
	InstructionsAr    *string `json:"instructionsAr"`
	RequiresReference bool    `json:"requiresReference"`
	Active            *bool   `json:"active"`
	SortOrder         int     `json:"sortOrder"`
}

func (in *Input) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	in.Type = Type(strings.ToLower(strings.TrimSpace(string(in.Type))))
	if in.Type == "" {
		in.Type = TypeCustom
	}
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if in.Name == "" {
		errs["name"] = "اسم طريقة الدفع مطلوب"
	}
	if in.NameAr == "" {
		errs["nameAr"] = "اسم طريقة الدفع بالعربية مطلوب"
	}
	if !in.Type.Valid() {
		errs["type"] = "نوع طريقة الدفع غير معروف"
	}
	return errs
}

func (in Input) apply(m *Method) {
	m.Name = in.Name
	m.NameAr = in.NameAr
	m.Description = in.Description
	m.DescriptionAr = in.DescriptionAr
	m.Icon = in.Icon
	m.Type = in.Type
	m.Instructions = in.Instructions
	m.InstructionsAr = in.InstructionsAr
	m.RequiresReference = in.RequiresReference
	m.SortOrder = in.SortOrder
	if in.Active != nil {
		m.Active = *in.Active
	}
}
