package validation

// Prefix is a card-number prefix pattern. Lo and Hi have the same number of
// digits; a single prefix has Lo == Hi.
type Prefix struct {
	Lo string
	Hi string
}

// Scheme describes a card network's numbering rules
type Scheme struct {
	Name     string // human-readable issuer label
	Prefixes []Prefix
	Lengths  []int
	CVVSize  int
	SkipLuhn bool
}

func p(prefix string) Prefix { return Prefix{Lo: prefix, Hi: prefix} }

func r(lo, hi string) Prefix { return Prefix{Lo: lo, Hi: hi} }

// BuiltinSchemes returns the default scheme table. The returned slice is a
// fresh copy and may be modified by the caller.
func BuiltinSchemes() []Scheme {
	return []Scheme{
		{
			Name:     "Visa",
			Prefixes: []Prefix{p("4")},
			Lengths:  []int{16, 18, 19},
			CVVSize:  3,
		},
		{
			Name: "Mastercard",
			Prefixes: []Prefix{
				r("51", "55"), r("2221", "2229"), r("223", "229"),
				r("23", "26"), r("270", "271"), p("2720"),
			},
			Lengths: []int{16},
			CVVSize: 3,
		},
		{
			Name:     "American Express",
			Prefixes: []Prefix{p("34"), p("37")},
			Lengths:  []int{15},
			CVVSize:  4,
		},
		{
			Name:     "Diners Club",
			Prefixes: []Prefix{r("300", "305"), p("36"), p("38"), p("39")},
			Lengths:  []int{14, 16, 19},
			CVVSize:  3,
		},
		{
			Name:     "Discover",
			Prefixes: []Prefix{p("6011"), r("644", "649"), p("65")},
			Lengths:  []int{16, 19},
			CVVSize:  3,
		},
		{
			Name:     "JCB",
			Prefixes: []Prefix{p("2131"), p("1800"), r("3528", "3589")},
			Lengths:  []int{16, 17, 18, 19},
			CVVSize:  3,
		},
		{
			Name: "UnionPay",
			Prefixes: []Prefix{
				p("620"), r("62100", "62182"), r("62184", "62187"), r("62185", "62197"),
				r("62200", "62205"), r("622010", "622999"), p("622018"), r("62207", "62209"),
				r("623", "626"), p("6270"), p("6272"), p("6276"), r("627700", "627779"),
				r("627781", "627799"), p("6282"), p("6291"), p("6292"), p("810"),
				r("8110", "8131"), r("8132", "8151"), r("8152", "8163"), r("8164", "8171"),
			},
			Lengths:  []int{14, 15, 16, 17, 18, 19},
			CVVSize:  3,
			SkipLuhn: true,
		},
		{
			Name: "Maestro",
			Prefixes: []Prefix{
				p("493698"), r("500000", "504174"), r("504176", "506698"), r("506779", "508999"),
				r("56", "59"), p("63"), p("67"), p("6"),
			},
			Lengths: []int{12, 13, 14, 15, 16, 17, 18, 19},
			CVVSize: 3,
		},
		{
			Name: "Elo",
			Prefixes: []Prefix{
				p("401178"), p("401179"), p("438935"), p("457631"), p("457632"), p("431274"),
				p("451416"), p("457393"), p("504175"), r("506699", "506778"), r("509000", "509999"),
				p("627780"), p("636297"), p("636368"), r("650031", "650033"), r("650035", "650051"),
				r("650405", "650439"), r("650485", "650538"), r("650541", "650598"),
				r("650700", "650718"), r("650720", "650727"), r("650901", "650978"),
				r("651652", "651679"), r("655000", "655019"), r("655021", "655058"),
			},
			Lengths: []int{16},
			CVVSize: 3,
		},
		{
			Name:     "Mir",
			Prefixes: []Prefix{r("2200", "2204")},
			Lengths:  []int{16, 17, 18, 19},
			CVVSize:  3,
		},
		{
			Name: "Hiper",
			Prefixes: []Prefix{
				p("637095"), p("63737423"), p("63743358"), p("637568"),
				p("637599"), p("637609"), p("637612"),
			},
			Lengths: []int{16},
			CVVSize: 3,
		},
		{
			Name:     "Hipercard",
			Prefixes: []Prefix{p("606282")},
			Lengths:  []int{16},
			CVVSize:  3,
		},
	}
}

// match reports whether number fits the prefix. A number shorter than the
// prefix matches when it could still grow into it (typing in progress); the
// strength is the prefix length only for a full match.
func (px Prefix) match(number string) (matched bool, strength int) {
	size := len(px.Lo)
	if len(number) >= size {
		head := number[:size]
		return px.Lo <= head && head <= px.Hi, size
	}
	n := len(number)
	return px.Lo[:n] <= number && number <= px.Hi[:n], 0
}

// match returns the strongest prefix match of the scheme
func (s Scheme) match(number string) (matched bool, strength int) {
	for _, px := range s.Prefixes {
		ok, st := px.match(number)
		if !ok {
			continue
		}
		matched = true
		if st > strength {
			strength = st
		}
	}
	return matched, strength
}

func (s Scheme) allowsLength(n int) bool {
	for _, l := range s.Lengths {
		if l == n {
			return true
		}
	}
	return false
}
