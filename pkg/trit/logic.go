package trit

// Not maps False and True onto each other and leaves Neutral alone.
func Not(a Trit) Trit {
	return True - a
}

// And is the meet of the ordering False < Neutral < True.
func And(a, b Trit) Trit {
	if a < b {
		return a
	}
	return b
}

// Or is the join of the ordering False < Neutral < True.
func Or(a, b Trit) Trit {
	if a > b {
		return a
	}
	return b
}

// Xor is the strong Kleene exclusive or, (a AND NOT b) OR (NOT a AND b).
// It agrees with the classical operator on False and True and is Neutral
// whenever either operand is Neutral.
func Xor(a, b Trit) Trit {
	return Or(And(a, Not(b)), And(Not(a), b))
}

func Nand(a, b Trit) Trit {
	return Not(And(a, b))
}

func Nor(a, b Trit) Trit {
	return Not(Or(a, b))
}

func Equiv(a, b Trit) Trit {
	return Not(Xor(a, b))
}

// ImplyKleene is material implication, NOT a OR b.
func ImplyKleene(a, b Trit) Trit {
	return Or(Not(a), b)
}

// ImplyLukasiewicz is min(1, 1-a+b) scaled onto 0..2. Unlike the Kleene
// variant it is True for Neutral -> Neutral.
func ImplyLukasiewicz(a, b Trit) Trit {
	v := 2 - int(a) + int(b)
	switch {
	case v > 2:
		v = 2
	case v < 0:
		v = 0
	}
	return Trit(v)
}

func (t Trit) Not() Trit {
	return Not(t)
}

func (t Trit) And(o Trit) Trit {
	return And(t, o)
}

func (t Trit) Or(o Trit) Trit {
	return Or(t, o)
}

func (t Trit) Xor(o Trit) Trit {
	return Xor(t, o)
}

func (t Trit) Nand(o Trit) Trit {
	return Nand(t, o)
}

func (t Trit) Nor(o Trit) Trit {
	return Nor(t, o)
}

func (t Trit) Equiv(o Trit) Trit {
	return Equiv(t, o)
}

func (t Trit) ImplyKleene(o Trit) Trit {
	return ImplyKleene(t, o)
}

func (t Trit) ImplyLukasiewicz(o Trit) Trit {
	return ImplyLukasiewicz(t, o)
}
