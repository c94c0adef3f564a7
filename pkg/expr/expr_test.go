package expr_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expedition0/lumen/pkg/expr"
	"github.com/expedition0/lumen/pkg/trit"
)

func TestExpr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expr Suite")
}

var _ = Describe("ValueSlot", func() {
	It("should start empty and unlocked", func() {
		s := expr.NewValue()
		Expect(s.Filled()).To(BeFalse())
		Expect(s.Locked()).To(BeFalse())
		_, ok := s.Value()
		Expect(ok).To(BeFalse())
	})

	It("should accept repeated sets while unlocked", func() {
		s := expr.NewValue()
		Expect(s.Set(trit.True)).To(Succeed())
		Expect(s.Set(trit.False)).To(Succeed())
		v, ok := s.Value()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(trit.False))
	})

	It("should reject sets after lock and keep the locked value", func() {
		s := expr.NewValue()
		Expect(s.Set(trit.True)).To(Succeed())
		s.Lock(trit.Neutral)

		err := s.Set(trit.False)
		var locked *expr.SlotLockedError
		Expect(errors.As(err, &locked)).To(BeTrue())
		Expect(locked.Slot).To(BeIdenticalTo(s))

		v, _ := s.Value()
		Expect(v).To(Equal(trit.Neutral))
		Expect(s.Locked()).To(BeTrue())
		Expect(s.Filled()).To(BeTrue())
	})

	It("should allow locking twice", func() {
		s := expr.LockedValue(trit.True)
		s.Lock(trit.False)
		v, _ := s.Value()
		Expect(v).To(Equal(trit.False))
	})

	It("should cycle from empty to False and onwards", func() {
		s := expr.NewValue()
		Expect(s.Cycle()).To(Succeed())
		v, _ := s.Value()
		Expect(v).To(Equal(trit.False))
		Expect(s.Cycle()).To(Succeed())
		Expect(s.Cycle()).To(Succeed())
		Expect(s.Cycle()).To(Succeed())
		v, _ = s.Value()
		Expect(v).To(Equal(trit.False))

		Expect(expr.LockedValue(trit.True).Cycle()).To(MatchError(ContainSubstring("locked")))
	})
})

var _ = Describe("OperatorSlot", func() {
	It("should mirror the value slot lock contract", func() {
		s := expr.NewOperator(expr.NewValue(), expr.NewValue())
		Expect(s.Set(expr.AND)).To(Succeed())
		Expect(s.Set(expr.OR)).To(Succeed())
		s.Lock(expr.XOR)
		var locked *expr.SlotLockedError
		Expect(errors.As(s.Set(expr.AND), &locked)).To(BeTrue())
		op, ok := s.Operator()
		Expect(ok).To(BeTrue())
		Expect(op).To(Equal(expr.XOR))
	})

	It("should cycle through the default palette", func() {
		s := expr.NewOperator(expr.NewValue(), expr.NewValue())
		var seen []expr.Operator
		for i := 0; i < 5; i++ {
			Expect(s.Cycle()).To(Succeed())
			op, _ := s.Operator()
			seen = append(seen, op)
		}
		Expect(seen).To(Equal([]expr.Operator{expr.NOT, expr.AND, expr.OR, expr.XOR, expr.NOT}))
	})

	It("should restart a custom palette when the current operator is absent", func() {
		s := expr.NewOperator(expr.NewValue(), expr.NewValue())
		Expect(s.Set(expr.IMPLY)).To(Succeed())
		Expect(s.Cycle(expr.NAND, expr.NOR)).To(Succeed())
		op, _ := s.Operator()
		Expect(op).To(Equal(expr.NAND))
	})
})

var _ = Describe("Operator", func() {
	It("should round trip names", func() {
		for _, op := range append(expr.LogicOperators, expr.PLUS, expr.MINUS) {
			parsed, err := expr.ParseOperator(op.String())
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(op))
		}
		_, err := expr.ParseOperator("nope")
		Expect(err).To(HaveOccurred())
	})

	It("should know its arity", func() {
		Expect(expr.NOT.Arity()).To(Equal(1))
		Expect(expr.IMPLY_LUK.Arity()).To(Equal(2))
		Expect(expr.PLUS.Logical()).To(BeFalse())
		Expect(expr.Operator(42).Logical()).To(BeFalse())
	})
})

var _ = Describe("Evaluate", func() {
	var (
		left, right *expr.ValueSlot
		root        *expr.OperatorSlot
	)

	BeforeEach(func() {
		left = expr.NewValue()
		right = expr.NewValue()
		root = expr.NewOperator(left, right)
	})

	It("should fail on an all unfilled binary tree", func() {
		_, err := expr.Evaluate(root)
		var unfilled *expr.UnfilledSlotError
		Expect(errors.As(err, &unfilled)).To(BeTrue())
		Expect(unfilled.Slot).To(BeIdenticalTo(root))
		Expect(errors.Is(err, expr.ErrIncomplete)).To(BeTrue())
	})

	It("should report the first unfilled leaf from the left", func() {
		root.Lock(expr.AND)
		_, err := expr.Evaluate(root)
		var unfilled *expr.UnfilledSlotError
		Expect(errors.As(err, &unfilled)).To(BeTrue())
		Expect(unfilled.Slot).To(BeIdenticalTo(left))

		left.Lock(trit.True)
		_, err = expr.Evaluate(root)
		Expect(errors.As(err, &unfilled)).To(BeTrue())
		Expect(unfilled.Slot).To(BeIdenticalTo(right))
	})

	It("should follow the operator truth table once every slot is locked", func() {
		for _, op := range expr.LogicOperators {
			for _, a := range trit.All {
				for _, b := range trit.All {
					l, r := expr.LockedValue(a), expr.LockedValue(b)
					n := expr.NewOperator(l, r)
					n.Lock(op)
					got, err := expr.Evaluate(n)
					Expect(err).ToNot(HaveOccurred())
					want, _ := op.Apply(a, b)
					Expect(got).To(Equal(want), "%s(%s, %s)", op, a, b)
				}
			}
		}
	})

	It("should evaluate NOT over the left child only", func() {
		n := expr.NewOperator(expr.LockedValue(trit.True), nil)
		n.Lock(expr.NOT)
		Expect(expr.Evaluate(n)).To(Equal(trit.False))
	})

	It("should report a missing operand when a unary node holds a binary operator", func() {
		n := expr.NewOperator(expr.LockedValue(trit.True), nil)
		Expect(n.Set(expr.AND)).To(Succeed())
		_, err := expr.Evaluate(n)
		Expect(errors.Is(err, expr.ErrIncomplete)).To(BeTrue())
	})

	It("should refuse arithmetic operators", func() {
		left.Lock(trit.True)
		right.Lock(trit.True)
		for _, op := range []expr.Operator{expr.PLUS, expr.MINUS} {
			root := expr.NewOperator(left, right)
			root.Lock(op)
			_, err := expr.Evaluate(root)
			var unsupported *expr.UnsupportedOperatorError
			Expect(errors.As(err, &unsupported)).To(BeTrue())
			Expect(unsupported.Operator).To(Equal(op))
			Expect(errors.Is(err, expr.ErrIncomplete)).To(BeFalse())
		}
	})

	It("should evaluate nested trees", func() {
		// AND(OR(1, 2), NOT(0)) = 2
		or := expr.NewOperator(expr.LockedValue(trit.Neutral), expr.LockedValue(trit.True))
		or.Lock(expr.OR)
		not := expr.NewOperator(expr.LockedValue(trit.False), nil)
		not.Lock(expr.NOT)
		and := expr.NewOperator(or, not)
		and.Lock(expr.AND)
		Expect(expr.Evaluate(and)).To(Equal(trit.True))
	})
})

var _ = Describe("Template", func() {
	var (
		v1, v2, v3   *expr.ValueSlot
		inner, outer *expr.OperatorSlot
	)

	BeforeEach(func() {
		v1, v2, v3 = expr.NewValue(), expr.NewValue(), expr.NewValue()
		inner = expr.NewOperator(v1, v2)
		inner.Lock(expr.OR)
		outer = expr.NewOperator(inner, v3)
		outer.Lock(expr.AND)
	})

	It("should discover slots in pre-order", func() {
		t := expr.NewTemplate(outer, trit.True)
		Expect(t.ValueSlots).To(HaveExactElements(
			BeIdenticalTo(v1), BeIdenticalTo(v2), BeIdenticalTo(v3)))
		Expect(t.OperatorSlots).To(HaveExactElements(
			BeIdenticalTo(outer), BeIdenticalTo(inner)))
	})

	It("should keep an explicit slot order", func() {
		t := expr.NewTemplateWithSlots(outer, trit.True,
			[]*expr.ValueSlot{v3, v1, v2}, []*expr.OperatorSlot{inner, outer})
		Expect(t.ValueSlots[0]).To(BeIdenticalTo(v3))
		Expect(t.OperatorSlots[0]).To(BeIdenticalTo(inner))
	})

	It("should distinguish incomplete from wrong", func() {
		t := expr.NewTemplate(outer, trit.True)
		_, err := t.Check()
		Expect(errors.Is(err, expr.ErrIncomplete)).To(BeTrue())

		Expect(v1.Set(trit.False)).To(Succeed())
		Expect(v2.Set(trit.False)).To(Succeed())
		Expect(v3.Set(trit.True)).To(Succeed())
		ok, err := t.Check()
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeFalse())

		Expect(v2.Set(trit.True)).To(Succeed())
		ok, err = t.Check()
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("should list open slots", func() {
		v2.Lock(trit.True)
		t := expr.NewTemplate(outer, trit.True)
		values, operators := t.Open()
		Expect(values).To(Equal([]int{0, 2}))
		Expect(operators).To(BeEmpty())
	})
})

var _ = Describe("Flow", func() {
	It("should record values for complete sub-trees of an incomplete tree", func() {
		a, b, c := expr.LockedValue(trit.True), expr.LockedValue(trit.Neutral), expr.NewValue()
		inner := expr.NewOperator(a, b)
		inner.Lock(expr.AND)
		root := expr.NewOperator(inner, c)
		root.Lock(expr.OR)

		results := expr.Flow(root)
		Expect(results).To(HaveLen(5))
		Expect(results[inner].Ok()).To(BeTrue())
		Expect(results[inner].Value).To(Equal(trit.Neutral))
		Expect(results[c].Ok()).To(BeFalse())
		Expect(errors.Is(results[root].Err, expr.ErrIncomplete)).To(BeTrue())
	})

	It("should agree with Evaluate on complete trees", func() {
		a, b := expr.LockedValue(trit.True), expr.LockedValue(trit.False)
		root := expr.NewOperator(a, b)
		root.Lock(expr.XOR)
		want, err := expr.Evaluate(root)
		Expect(err).ToNot(HaveOccurred())
		Expect(expr.Flow(root)[root].Value).To(Equal(want))
	})
})

var _ = Describe("Format", func() {
	It("should render open slots as question marks", func() {
		a := expr.LockedValue(trit.Neutral)
		b := expr.NewValue()
		inner := expr.NewOperator(a, b)
		inner.Lock(expr.OR)
		root := expr.NewOperator(inner, expr.NewValue())
		root.Lock(expr.AND)
		Expect(expr.Format(root)).To(Equal("AND(OR(1, ?), ?)"))

		not := expr.NewOperator(expr.LockedValue(trit.True), nil)
		Expect(expr.Format(not)).To(Equal("?(2)"))
	})
})
