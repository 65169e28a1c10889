// Package validate holds the field-level validation rules shared by the
// catalog services: Brazilian national ids (CPF) with checksum, postal codes,
// phone numbers, vehicle plates and emails.
package validate

import (
	"regexp"
	"strings"
)

var (
	cpfPattern    = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cepPattern    = regexp.MustCompile(`^\d{5}-\d{3}$`)
	phonePattern  = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	platePattern  = regexp.MustCompile(`^[A-Z]{3}-\d{4}$`)
	emailPattern  = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nonDigits     = regexp.MustCompile(`[^0-9]`)
	// Go's RE2 engine has no backreferences, so the "11 copies of the same
	// digit" rule is spelled out per digit instead of `^(\d)\1{10}$`.
	repeatedDigit = regexp.MustCompile(`^(0{11}|1{11}|2{11}|3{11}|4{11}|5{11}|6{11}|7{11}|8{11}|9{11})$`)
)

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// CPF validates a national id, masked (###.###.###-##) or digits-only,
// including the check-digit algorithm.
func CPF(cpf string) bool {
	cpf = strings.TrimSpace(cpf)
	if cpf == "" {
		return false
	}
	if strings.ContainsAny(cpf, ".-") && !cpfPattern.MatchString(cpf) {
		return false
	}
	digits := Digits(cpf)
	if len(digits) != 11 || repeatedDigit.MatchString(digits) {
		return false
	}
	return cpfCheckDigits(digits)
}

func cpfCheckDigits(cpf string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(cpf[i]-'0') * (10 - i)
	}
	d1 := 11 - sum%11
	if d1 >= 10 {
		d1 = 0
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(cpf[i]-'0') * (11 - i)
	}
	d2 := 11 - sum%11
	if d2 >= 10 {
		d2 = 0
	}

	return int(cpf[9]-'0') == d1 && int(cpf[10]-'0') == d2
}

// CEP validates a postal code in the #####-### format.
func CEP(cep string) bool {
	return cepPattern.MatchString(cep)
}

// Phone validates a phone number, masked ((##) #####-####) or as 10 or 11
// bare digits.
func Phone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}
	if strings.ContainsAny(phone, "()-") {
		return phonePattern.MatchString(phone)
	}
	n := len(Digits(phone))
	return n == 10 || n == 11
}

// Plate validates a vehicle plate in the AAA-0000 format.
func Plate(plate string) bool {
	return platePattern.MatchString(strings.ToUpper(strings.TrimSpace(plate)))
}

// Email validates an email address.
func Email(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
