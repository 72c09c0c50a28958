package validate

// Strength grades a password.
type Strength string

const (
	StrengthNone   Strength = ""
	StrengthWeak   Strength = "weak"
	StrengthFair   Strength = "fair"
	StrengthGood   Strength = "good"
	StrengthStrong Strength = "strong"
)

// Label is the text shown under the strength bar.
func (s Strength) Label() string {
	switch s {
	case StrengthWeak:
		return "Weak password"
	case StrengthFair:
		return "Fair password"
	case StrengthGood:
		return "Good password"
	case StrengthStrong:
		return "Strong password"
	}
	return ""
}

// PasswordStrength scores password on five criteria: at least 8 characters,
// at least 12 characters, mixed case, a digit, and a symbol.
func PasswordStrength(password string) Strength {
	if password == "" {
		return StrengthNone
	}
	var lower, upper, digit, other bool
	n := 0
	for _, r := range password {
		n++
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	score := 0
	if n >= 8 {
		score++
	}
	if n >= 12 {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if other {
		score++
	}
	switch {
	case score < 2:
		return StrengthWeak
	case score < 3:
		return StrengthFair
	case score < 4:
		return StrengthGood
	default:
		return StrengthStrong
	}
}
