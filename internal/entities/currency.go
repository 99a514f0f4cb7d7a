package entities

import "strings"

const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyBTC = "BTC"
)

// fixed registry: ISO 4217 codes plus the crypto currencies BitPay accepts
var currencies = buildCurrencyRegistry(
	// crypto
	"BCH BTC DAI DOGE ETH GUSD LTC MATIC PAX SHIB USDC USDT WBTC XRP BUSD APE EUROC",
	// fiat, ISO 4217
	"AED AFN ALL AMD ANG AOA ARS AUD AWG AZN BAM BBD BDT BGN BHD BIF BMD BND BOB BOV BRL BSD BTN BWP BYN BZD "+
		"CAD CDF CHE CHF CHW CLF CLP CNY COP COU CRC CUC CUP CVE CZK DJF DKK DOP DZD EGP ERN ETB EUR FJD FKP "+
		"GBP GEL GHS GIP GMD GNF GTQ GYD HKD HNL HRK HTG HUF IDR ILS INR IQD IRR ISK JMD JOD JPY KES KGS KHR "+
		"KMF KPW KRW KWD KYD KZT LAK LBP LKR LRD LSL LYD MAD MDL MGA MKD MMK MNT MOP MRU MUR MVR MWK MXN MXV "+
		"MYR MZN NAD NGN NIO NOK NPR NZD OMR PAB PEN PGK PHP PKR PLN PYG QAR RON RSD RUB RWF SAR SBD SCR SDG "+
		"SEK SGD SHP SLE SLL SOS SRD SSP STN SVC SYP SZL THB TJS TMT TND TOP TRY TTD TWD TZS UAH UGX USD USN "+
		"UYI UYU UZS VES VND VUV WST XAF XCD XDR XOF XPF XSU XUA YER ZAR ZMW ZWL",
)

func buildCurrencyRegistry(groups ...string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, group := range groups {
		for _, code := range strings.Fields(group) {
			result[code] = struct{}{}
		}
	}
	return result
}

// IsValidCurrency reports whether code is an exact, upper case entry of the registry.
func IsValidCurrency(code string) bool {
	_, ok := currencies[code]
	return ok
}
