package ports

// InstructionSource loads natural-language instructions from a batch file
// (CSV or XLSX with an "instruction" column).
type InstructionSource interface {
	Load(path string) ([]string, error)
}
