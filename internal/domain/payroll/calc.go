package payroll

import "github.com/shopspring/decimal"

// Statutory rates applied when generating a payroll run.
var (
	allowanceRate = decimal.NewFromFloat(0.15)
	deductionRate = decimal.NewFromFloat(0.12)
)

// Compute derives allowances (15% of base), deductions (12% of base), and
// net pay from a base salary. Decimal math keeps the percentages exact.
func Compute(baseSalary float64) (allowances, deductions, netPay float64) {
	base := decimal.NewFromFloat(baseSalary)
	allowance := base.Mul(allowanceRate)
	deduction := base.Mul(deductionRate)
	net := base.Add(allowance).Sub(deduction)
	return allowance.InexactFloat64(), deduction.InexactFloat64(), net.InexactFloat64()
}

// NetPay recomputes net from caller-supplied components.
func NetPay(baseSalary, allowances, deductions float64) float64 {
	return decimal.NewFromFloat(baseSalary).
		Add(decimal.NewFromFloat(allowances)).
		Sub(decimal.NewFromFloat(deductions)).
		InexactFloat64()
}
