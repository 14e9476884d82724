package utils

import (
	"simpleguide/cmd/internal/domain/entity"
	"strings"
)

// IsCNPJValid checks length, digits and both RFB check digits.
func IsCNPJValid(cnpj string) bool {
	if len(cnpj) != entity.CNPJLength || !IsOnlyNumbers(cnpj) {
		return false
	}

	// "00000000000000" and friends pass the arithmetic
	if strings.Count(cnpj, cnpj[:1]) == entity.CNPJLength {
		return false
	}

	return mod11(cnpj[:12], 9) == cnpj[12] && mod11(cnpj[:13], 9) == cnpj[13]
}

func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}

// mod11 computes the check digit of base. Weights start at 2 on the
// rightmost digit and grow up to maxWeight, then wrap back to 2.
func mod11(base string, maxWeight int) byte {
	sum, weight := 0, 2
	for i := len(base) - 1; i >= 0; i-- {
		sum += int(base[i]-'0') * weight
		if weight++; weight > maxWeight {
			weight = 2
		}
	}

	if rem := sum % 11; rem >= 2 {
		return byte('0' + 11 - rem)
	}
	return '0'
}
