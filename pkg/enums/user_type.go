package enums

import "fmt"

// UserType mirrors the numeric account tiers stored in the users table.
type UserType int16

const (
	UserTypeClient  UserType = 1
	UserTypeCashier UserType = 2
	UserTypeAdmin   UserType = 3
)

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeClient, UserTypeCashier, UserTypeAdmin:
		return true
	}
	return false
}

// String returns the display label used in API payloads.
func (t UserType) String() string {
	switch t {
	case UserTypeClient:
		return "Client"
	case UserTypeCashier:
		return "Cashier"
	case UserTypeAdmin:
		return "Admin"
	}
	return fmt.Sprintf("UserType(%d)", int16(t))
}

// ParseUserType maps a display label back to its numeric value.
func ParseUserType(label string) (UserType, error) {
	switch label {
	case "Client":
		return UserTypeClient, nil
	case "Cashier":
		return UserTypeCashier, nil
	case "Admin":
		return UserTypeAdmin, nil
	}
	return 0, fmt.Errorf("unknown user type %q", label)
}
