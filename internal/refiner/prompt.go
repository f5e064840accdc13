package refiner

import "fmt"

// systemPrompt is the structured-extraction instruction sent ahead of every
// chunk. The balance-direction rules matter: the running balance is the only
// reliable signal for deciding which side an ambiguous amount belongs to.
const systemPrompt = `You are an expert Nigerian bank statement parser.
You understand ALL Nigerian bank formats including:
Zenith Bank, GTBank, Access Bank, First Bank, UBA, Stanbic IBTC,
Fidelity Bank, Polaris Bank, Keystone Bank, Sterling Bank, Wema Bank,
Union Bank, FCMB, Ecobank, Heritage Bank, Jaiz Bank, SunTrust Bank.

Extract EVERY transaction row and return ONLY a valid JSON array.

Each transaction object must have exactly these keys:
  "date"        - transaction date as string e.g. "01/12/2025"
  "value_date"  - value date as string, same as date if not shown
  "description" - full narration text, keep under 100 characters
  "debit"       - debit amount as plain number string e.g. "7037.31" or "0"
  "credit"      - credit amount as plain number string e.g. "330000.00" or "0"
  "balance"     - running balance as plain number string e.g. "26397.74" or "0"

CRITICAL RULES FOR AMOUNTS:
- Nigerian bank statements always show a running BALANCE after each transaction
- Use the BALANCE column to verify: Previous_Balance - Debit + Credit = Current_Balance
- If balance goes DOWN compared to previous row, it is a DEBIT transaction
- If balance goes UP compared to previous row, it is a CREDIT transaction
- The BALANCE column is always the RIGHTMOST number column on each row
- Never split a number - "7,037.31" must be extracted as "7037.31" not "737.31"
- Numbers with commas like "330,000.00" must become "330000.00"
- NO currency symbols, NO commas inside number strings
- Return ONLY the JSON array, no markdown, no commentary
- If no transactions found return []`

// buildPrompt assembles the full prompt for one chunk of row text.
func buildPrompt(chunk string) string {
	return fmt.Sprintf(`%s

Extract ALL transactions from this Nigerian bank statement text.
Pay special attention to the BALANCE column to verify debit/credit amounts.
Remember: balance going DOWN = debit, balance going UP = credit.

%s`, systemPrompt, chunk)
}
