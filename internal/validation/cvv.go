package validation

// CheckCVV accepts exactly expectedLength digits
func (d *Default) CheckCVV(candidate string, expectedLength int) bool {
	if expectedLength <= 0 {
		expectedLength = DefaultCVVSize
	}
	return len(candidate) == expectedLength && isDigits(candidate)
}
