package model

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "x+tag@shop.io"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "plain", "a@b", "a b@c.com", "@c.com", "a@.com "}
	for _, email := range invalid {
		if err := ValidateEmail(email); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("ValidateEmail(%q) = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestValidateRegisterRole(t *testing.T) {
	if err := ValidateRegisterRole(RoleBuyer); err != nil {
		t.Errorf("buyer 应允许注册: %v", err)
	}
	if err := ValidateRegisterRole(RoleSeller); err != nil {
		t.Errorf("seller 应允许注册: %v", err)
	}
	// admin 不开放注册
	if err := ValidateRegisterRole(RoleAdmin); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("admin 注册应返回 ErrInvalidRole, got %v", err)
	}
	if err := ValidateRegisterRole("superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("未知角色应返回 ErrInvalidRole, got %v", err)
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name     string
		pName    string
		category string
		price    float64
		stock    int
		wantErr  error
	}{
		{"正常商品", "杯垫", "家居", 9.99, 10, nil},
		{"零库存合法", "杯垫", "家居", 9.99, 0, nil},
		{"名称为空", "", "家居", 9.99, 10, ErrEmptyName},
		{"分类为空", "杯垫", "", 9.99, 10, ErrEmptyCategory},
		{"价格为零", "杯垫", "家居", 0, 10, ErrInvalidPrice},
		{"价格为负", "杯垫", "家居", -1, 10, ErrInvalidPrice},
		{"库存为负", "杯垫", "家居", 9.99, -1, ErrInvalidStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProduct(tt.pName, tt.category, tt.price, tt.stock)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProduct() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		if err := ValidateRating(rating); err != nil {
			t.Errorf("ValidateRating(%d) = %v, want nil", rating, err)
		}
	}
	for _, rating := range []int{0, 6, -1} {
		if err := ValidateRating(rating); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("ValidateRating(%d) = %v, want ErrInvalidRating", rating, err)
		}
	}
}
