/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package enums holds the closed code vocabularies used on the Terminal's
// control and stream wire formats: data-type tags for tick columns, message
// type codes for request/response framing, and the security/venue/condition
// catalogs needed to make sense of a decoded tick.
package enums

import "fmt"

// EnumParseError is returned when a wire code does not match any member of a
// closed vocabulary. Unlike UNDEFINED fallbacks (TradeCondition, QuoteCondition),
// an unrecognized DataType or MessageType means the codec itself is out of sync
// with the Terminal, so it is always fatal.
type EnumParseError struct {
	Value any
	Enum  string
}

func (e *EnumParseError) Error() string {
	return fmt.Sprintf("value %v cannot be parsed into a %s", e.Value, e.Enum)
}

// DataType identifies a single column in a format tick. The wire carries only
// the numeric Code; IsPrice marks columns that require PRICE_TYPE scaling.
type DataType struct {
	Code    int32
	Name    string
	IsPrice bool
}

func (d DataType) String() string { return d.Name }

var (
	DTDate       = DataType{0, "DATE", false}
	DTMsOfDay    = DataType{1, "MS_OF_DAY", false}
	DTCorrection = DataType{2, "CORRECTION", false}
	DTPriceType  = DataType{4, "PRICE_TYPE", false}

	DTBidSize      = DataType{101, "BID_SIZE", false}
	DTBidExchange  = DataType{102, "BID_EXCHANGE", false}
	DTBid          = DataType{103, "BID", true}
	DTBidCondition = DataType{104, "BID_CONDITION", false}
	DTAskSize      = DataType{105, "ASK_SIZE", false}
	DTAskExchange  = DataType{106, "ASK_EXCHANGE", false}
	DTAsk          = DataType{107, "ASK", true}
	DTAskCondition = DataType{108, "ASK_CONDITION", false}

	DTMidpoint = DataType{111, "MIDPOINT", true}
	DTVwap     = DataType{112, "VWAP", true}
	DTQwap     = DataType{113, "QWAP", true}
	DTWap      = DataType{114, "WAP", true}

	DTOpenInterest = DataType{121, "OPEN_INTEREST", true}

	DTSequence = DataType{131, "SEQUENCE", false}
	DTSize     = DataType{132, "SIZE", false}
	DTCondtion = DataType{133, "CONDITION", false}
	DTPrice    = DataType{134, "PRICE", true}

	DTVolume = DataType{141, "VOLUME", false}
	DTCount  = DataType{142, "COUNT", false}

	DTTheta   = DataType{151, "THETA", true}
	DTVega    = DataType{152, "VEGA", true}
	DTDelta   = DataType{153, "DELTA", true}
	DTRho     = DataType{154, "RHO", true}
	DTEpsilon = DataType{155, "EPSILON", true}
	DTLambda  = DataType{156, "LAMBDA", true}

	DTGamma = DataType{161, "GAMMA", true}
	DTVanna = DataType{162, "VANNA", true}
	DTCharm = DataType{163, "CHARM", true}
	DTVomma = DataType{164, "VOMMA", true}
	DTVeta  = DataType{165, "VETA", true}
	DTVera  = DataType{166, "VERA", true}
	DTSopdk = DataType{167, "SOPDK", true}

	DTSpeed  = DataType{171, "SPEED", true}
	DTZomma  = DataType{172, "ZOMMA", true}
	DTColor  = DataType{173, "COLOR", true}
	DTUltima = DataType{174, "ULTIMA", true}

	DTD1        = DataType{181, "D1", true}
	DTD2        = DataType{182, "D2", true}
	DTDualDelta = DataType{183, "DUAL_DELTA", true}
	DTDualGamma = DataType{184, "DUAL_GAMMA", true}

	DTOpen  = DataType{191, "OPEN", true}
	DTHigh  = DataType{192, "HIGH", true}
	DTLow   = DataType{193, "LOW", true}
	DTClose = DataType{194, "CLOSE", true}

	DTImpliedVol      = DataType{201, "IMPLIED_VOL", true}
	DTBidImpliedVol   = DataType{202, "BID_IMPLIED_VOL", true}
	DTAskImpliedVol   = DataType{203, "ASK_IMPLIED_VOL", true}
	DTUnderlyingPrice = DataType{204, "UNDERLYING_PRICE", true}

	DTRatio  = DataType{211, "RATIO", true}
	DTRating = DataType{212, "RATING", true}

	DTExDate          = DataType{221, "EX_DATE", false}
	DTRecordDate      = DataType{222, "RECORD_DATE", false}
	DTPaymentDate     = DataType{223, "PAYMENT_DATE", false}
	DTAnnDate         = DataType{224, "ANN_DATE", false}
	DTDividendAmount  = DataType{225, "DIVIDEND_AMOUNT", true}
	DTLessAmount      = DataType{226, "LESS_AMOUNT", true}
)

var dataTypesByCode = buildDataTypeIndex()

func buildDataTypeIndex() map[int32]DataType {
	all := []DataType{
		DTDate, DTMsOfDay, DTCorrection, DTPriceType,
		DTBidSize, DTBidExchange, DTBid, DTBidCondition, DTAskSize, DTAskExchange, DTAsk, DTAskCondition,
		DTMidpoint, DTVwap, DTQwap, DTWap,
		DTOpenInterest,
		DTSequence, DTSize, DTCondtion, DTPrice,
		DTVolume, DTCount,
		DTTheta, DTVega, DTDelta, DTRho, DTEpsilon, DTLambda,
		DTGamma, DTVanna, DTCharm, DTVomma, DTVeta, DTVera, DTSopdk,
		DTSpeed, DTZomma, DTColor, DTUltima,
		DTD1, DTD2, DTDualDelta, DTDualGamma,
		DTOpen, DTHigh, DTLow, DTClose,
		DTImpliedVol, DTBidImpliedVol, DTAskImpliedVol, DTUnderlyingPrice,
		DTRatio, DTRating,
		DTExDate, DTRecordDate, DTPaymentDate, DTAnnDate, DTDividendAmount, DTLessAmount,
	}
	idx := make(map[int32]DataType, len(all))
	for _, dt := range all {
		idx[dt.Code] = dt
	}
	return idx
}

// DataTypeFromCode resolves a wire code to its DataType. An unrecognized code
// is always a fatal *EnumParseError: the format tick tells the decoder how to
// read every subsequent row, so an unknown column makes the whole body
// unreadable.
func DataTypeFromCode(code int32) (DataType, error) {
	dt, ok := dataTypesByCode[code]
	if !ok {
		return DataType{}, &EnumParseError{Value: code, Enum: "DataType"}
	}
	return dt, nil
}

// MessageType identifies the kind of frame on the control socket, both
// outbound requests (HIST, LAST, KILL, ...) and inbound responses (ERROR,
// HIST_END, ...).
type MessageType int32

const (
	MsgCredentials MessageType = 0
	MsgSessionToken MessageType = 1
	MsgInfo        MessageType = 2
	MsgMetadata    MessageType = 3
	MsgConnected   MessageType = 4
	MsgVersion     MessageType = 5

	MsgPing          MessageType = 100
	MsgError         MessageType = 101
	MsgDisconnected  MessageType = 102
	MsgReconnected   MessageType = 103
	MsgReqSyms       MessageType = 104
	MsgSetSyms       MessageType = 105
	MsgCantChangeSyms MessageType = 106
	MsgChangedSyms   MessageType = 107
	MsgKill          MessageType = 108

	MsgHist           MessageType = 200
	MsgAllExpirations MessageType = 201
	MsgAllStrikes     MessageType = 202
	MsgHistEnd        MessageType = 203
	MsgLast           MessageType = 204
	MsgAllRoots       MessageType = 205
	MsgListEnd        MessageType = 206
	MsgAllDates       MessageType = 207
	MsgAtTime         MessageType = 208
	MsgAllDatesBulk   MessageType = 209
	MsgStreamReq      MessageType = 210
	MsgStreamCallback MessageType = 211
	MsgStreamRemove   MessageType = 212

	MsgRequestServerList    MessageType = 300
	MsgRequestOptimalServer MessageType = 301
	MsgOptimalServer        MessageType = 302
	MsgPacket               MessageType = 303
	MsgBanIP                MessageType = 304
	MsgPopulation           MessageType = 305
)

var messageTypeNames = map[MessageType]string{
	MsgCredentials: "CREDENTIALS", MsgSessionToken: "SESSION_TOKEN", MsgInfo: "INFO",
	MsgMetadata: "METADATA", MsgConnected: "CONNECTED", MsgVersion: "VERSION",
	MsgPing: "PING", MsgError: "ERROR", MsgDisconnected: "DISCONNECTED",
	MsgReconnected: "RECONNECTED", MsgReqSyms: "REQ_SYMS", MsgSetSyms: "SET_SYMS",
	MsgCantChangeSyms: "CANT_CHANGE_SYMS", MsgChangedSyms: "CHANGED_SYMS", MsgKill: "KILL",
	MsgHist: "HIST", MsgAllExpirations: "ALL_EXPIRATIONS", MsgAllStrikes: "ALL_STRIKES",
	MsgHistEnd: "HIST_END", MsgLast: "LAST", MsgAllRoots: "ALL_ROOTS",
	MsgListEnd: "LIST_END", MsgAllDates: "ALL_DATES", MsgAtTime: "AT_TIME",
	MsgAllDatesBulk: "ALL_DATES_BULK", MsgStreamReq: "STREAM_REQ",
	MsgStreamCallback: "STREAM_CALLBACK", MsgStreamRemove: "STREAM_REMOVE",
	MsgRequestServerList: "REQUEST_SERVER_LIST", MsgRequestOptimalServer: "REQUEST_OPTIMAL_SERVER",
	MsgOptimalServer: "OPTIMAL_SERVER", MsgPacket: "PACKET", MsgBanIP: "BAN_IP",
	MsgPopulation: "POPULATION",
}

func (m MessageType) String() string {
	if name, ok := messageTypeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MessageType(%d)", int32(m))
}

// MessageTypeFromCode resolves a wire code to a MessageType. Unrecognized
// codes are fatal: the header's message type drives every downstream parsing
// decision.
func MessageTypeFromCode(code int32) (MessageType, error) {
	mt := MessageType(code)
	if _, ok := messageTypeNames[mt]; !ok {
		return 0, &EnumParseError{Value: code, Enum: "MessageType"}
	}
	return mt, nil
}

// SecType is the security type addressed by a request.
type SecType string

const (
	SecOption  SecType = "OPTION"
	SecStock   SecType = "STOCK"
	SecFuture  SecType = "FUTURE"
	SecForward SecType = "FORWARD"
	SecSwap    SecType = "SWAP"
	SecDebt    SecType = "DEBT"
	SecCrypto  SecType = "CRYPTO"
	SecWarrant SecType = "WARRANT"
)

// OptionRight distinguishes calls from puts.
type OptionRight string

const (
	RightPut  OptionRight = "P"
	RightCall OptionRight = "C"
)

// OptionReqType selects the shape of historical/listing option data returned.
type OptionReqType int32

const (
	OptEOD OptionReqType = 1

	OptQuote        OptionReqType = 101
	OptVolume       OptionReqType = 102
	OptOpenInterest OptionReqType = 103
	OptOHLC         OptionReqType = 104
	OptOHLCQuote    OptionReqType = 105

	OptTrade                     OptionReqType = 201
	OptImpliedVolatility         OptionReqType = 202
	OptGreeks                    OptionReqType = 203
	OptLiquidity                 OptionReqType = 204
	OptLiquidityPlus             OptionReqType = 205
	OptImpliedVolatilityVerbose  OptionReqType = 206

	OptTradeGreeks        OptionReqType = 301
	OptGreeksSecondOrder  OptionReqType = 302
	OptGreeksThirdOrder   OptionReqType = 303
	OptAltCalcs           OptionReqType = 304
)

// StockReqType selects the shape of historical/listing stock data returned.
type StockReqType int32

const (
	StkEOD   StockReqType = 1
	StkQuote StockReqType = 101
	StkVolume StockReqType = 102
	StkOHLC  StockReqType = 104
	StkTrade StockReqType = 201
)

// StreamMsgType tags every frame arriving on the stream socket.
type StreamMsgType uint8

const (
	StreamCredentials  StreamMsgType = 0
	StreamSessionToken StreamMsgType = 1
	StreamInfo         StreamMsgType = 2
	StreamMetadata     StreamMsgType = 3
	StreamConnected    StreamMsgType = 4

	StreamPing         StreamMsgType = 10
	StreamError        StreamMsgType = 11
	StreamDisconnected StreamMsgType = 12
	StreamReconnected  StreamMsgType = 13

	StreamContract     StreamMsgType = 20
	StreamQuote        StreamMsgType = 21
	StreamTrade        StreamMsgType = 22
	StreamOpenInterest StreamMsgType = 23
	StreamOHLCVC       StreamMsgType = 24

	StreamStart   StreamMsgType = 30
	StreamRestart StreamMsgType = 31
	StreamStop    StreamMsgType = 32

	StreamReqResponse StreamMsgType = 40
)

var streamMsgTypeNames = map[StreamMsgType]string{
	StreamCredentials: "CREDENTIALS", StreamSessionToken: "SESSION_TOKEN", StreamInfo: "INFO",
	StreamMetadata: "METADATA", StreamConnected: "CONNECTED",
	StreamPing: "PING", StreamError: "ERROR", StreamDisconnected: "DISCONNECTED", StreamReconnected: "RECONNECTED",
	StreamContract: "CONTRACT", StreamQuote: "QUOTE", StreamTrade: "TRADE",
	StreamOpenInterest: "OPEN_INTEREST", StreamOHLCVC: "OHLCVC",
	StreamStart: "START", StreamRestart: "RESTART", StreamStop: "STOP",
	StreamReqResponse: "REQ_RESPONSE",
}

func (s StreamMsgType) String() string {
	if name, ok := streamMsgTypeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StreamMsgType(%d)", uint8(s))
}

// StreamMsgTypeFromCode resolves a stream-socket tag byte. Unrecognized tags
// are fatal to the receive loop: without a known tag, the payload size (and
// therefore the next frame boundary) cannot be determined.
func StreamMsgTypeFromCode(code uint8) (StreamMsgType, error) {
	smt := StreamMsgType(code)
	if _, ok := streamMsgTypeNames[smt]; !ok {
		return 0, &EnumParseError{Value: code, Enum: "StreamMsgType"}
	}
	return smt, nil
}

// StreamResponseType is the acknowledgement code the Terminal sends back for
// a stream subscribe/unsubscribe request, correlated by request id.
type StreamResponseType uint8

const (
	StreamRespSubscribed        StreamResponseType = 0
	StreamRespTimedOut          StreamResponseType = 1
	StreamRespMaxStreamsReached StreamResponseType = 2
	StreamRespInvalidPerms      StreamResponseType = 3
)

var streamResponseTypeNames = map[StreamResponseType]string{
	StreamRespSubscribed: "SUBSCRIBED", StreamRespTimedOut: "TIMED_OUT",
	StreamRespMaxStreamsReached: "MAX_STREAMS_REACHED", StreamRespInvalidPerms: "INVALID_PERMS",
}

func (s StreamResponseType) String() string {
	if name, ok := streamResponseTypeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StreamResponseType(%d)", uint8(s))
}

func StreamResponseTypeFromCode(code uint8) (StreamResponseType, error) {
	srt := StreamResponseType(code)
	if _, ok := streamResponseTypeNames[srt]; !ok {
		return 0, &EnumParseError{Value: code, Enum: "StreamResponseType"}
	}
	return srt, nil
}

// Exchange identifies a trading venue by its Terminal code and MIC.
type Exchange struct {
	Code int32
	MIC  string
	Name string
}

func (e Exchange) String() string { return e.Name }

var exchangesByCode = buildExchangeIndex()

func buildExchangeIndex() map[int32]Exchange {
	all := []Exchange{
		{0, "", "Comp"}, {1, "XNMS", "Nasdaq Exchange"}, {2, "XADF", "Nasdaq Alternative Display Facility"},
		{3, "XNYS", "New York Stock Exchange"}, {4, "XASE", "American Stock Exchange"},
		{5, "XCBO", "Chicago Board Options Exchange"}, {6, "XISX", "International Securities Exchange"},
		{7, "ARCX", "NYSE ARCA (Pacific)"}, {8, "XCIS", "National Stock Exchange (Cincinnati)"},
		{9, "XPHL", "Philidelphia Stock Exchange"}, {10, "OPRA", "Options Pricing Reporting Authority"},
		{11, "XBOS", "Boston Stock/Options Exchange"}, {12, "XNGS", "Nasdaq Global+Select Market (NMS)"},
		{13, "XNCM", "Nasdaq Capital Market (SmallCap)"}, {14, "OOTC", "Nasdaq Bulletin Board"},
		{15, "OOTC", "Nasdaq OTC"}, {16, "XADF", "Nasdaq Aggregate Quote"}, {17, "CXHI", "Chicago Stock Exchange"},
		{18, "XTSE", "Toronto Stock Exchange"}, {19, "XTSX", "Canadian Venture Exchange"},
		{20, "XCME", "Chicago Mercantile Exchange"}, {21, "IMAG", "New York Board of Trade"},
		{22, "MCRY", "ISE Mercury"}, {23, "XCEC", "COMEX (division of NYMEX)"},
		{24, "GLBX", "Chicago Board of Trade"}, {25, "XNYM", "New York Mercantile Exchange"},
		{26, "XKBT", "Kansas City Board of Trade"}, {27, "XMGE", "Minneapolis Grain Exchange"},
		{28, "IFCA", "Winnipeg Commodity Exchange"}, {29, "XOCH", "OneChicago Exchange"},
		{30, "", "Dow Jones Indicies"}, {31, "GMNI", "ISE Gemini"},
		{32, "XSES", "Singapore International Monetary Exchange"}, {33, "XLON", "London Stock Exchange"},
		{34, "XEUR", "Eurex"}, {35, "XAMS", "EuroNext"}, {36, "", "Data Transmission Network"},
		{37, "XLME", "London Metals Exchange Matched Trades"}, {38, "XLME", "London Metals Exchange"},
		{39, "IEPA", "Intercontinental Exchange (IPE)"}, {40, "XMOD", "Montreal Stock Exchange"},
		{41, "XTSX", "Winnipeg Stock Exchange"}, {42, "C2OX", "CBOE C2 Option Exchange"},
		{43, "XMIO", "Miami Exchange"}, {44, "XNYM", "NYMEX Clearport"}, {45, "BARX", "Barclays"},
		{46, "", "TenFore"}, {47, "XBOS", "NASDAQ Boston"}, {48, "XEUR", "HotSpot Eurex US"},
		{49, "XEUR", "Eurex US"}, {50, "XEUR", "Eurex EU"}, {51, "XEUC", "Euronext Commodities"},
		{52, "XEUE", "Euronext Index Derivatives"}, {53, "XEUI", "Euronext Interest Rates"},
		{54, "XCBF", "CBOE Futures Exchange"}, {55, "XPBT", "Philadelphia Board of Trade"},
		{56, "XHAN", "Hannover WTB Exchange"}, {57, "FINN", "FINRA/NASDAQ Trade Reporting Facility"},
		{58, "XADF", "BSE Trade Reporting Facility"}, {59, "FINY", "NYSE Trade Reporting Facility"},
		{60, "BATS", "BATS Trading"}, {61, "XNLI", "NYSE LIFFE metals contracts"}, {62, "OTCM", "Pink Sheets"},
		{63, "BATY", "BATS Trading"}, {64, "EDGA", "Direct Edge"}, {65, "EDGX", "Direct Edge"},
		{66, "", "Russell Indexes"}, {67, "XIOM", "CME Indexes"}, {68, "IEXG", "Investors Exchange"},
		{69, "", "TBA Exchange 69"}, {70, "", "TBA Exchange 70"}, {71, "", "TBA Exchange 71"},
		{72, "", "TBA Exchange 72"}, {73, "", "TBA Exchange 73"}, {74, "", "TBA Exchange 74"},
		{75, "", "TBA Exchange 75"}, {76, "", "TBA Exchange 76"}, {77, "", "TBA Exchange 77"},
		{78, "", "TBA Exchange 78"}, {79, "", "TBA Exchange 79"},
	}
	idx := make(map[int32]Exchange, len(all))
	for _, e := range all {
		idx[e.Code] = e
	}
	return idx
}

// ExchangeFromCode resolves an exchange code. Unknown venues are fatal since
// there is no sentinel venue in the upstream catalog.
func ExchangeFromCode(code int32) (Exchange, error) {
	e, ok := exchangesByCode[code]
	if !ok {
		return Exchange{}, &EnumParseError{Value: code, Enum: "Exchange"}
	}
	return e, nil
}

// TradeCondition classifies how a trade print was generated. Codes not in the
// published catalog resolve to TradeConditionUndefined rather than erroring,
// because new condition codes are added by exchanges faster than clients can
// track them.
type TradeCondition int32

const TradeConditionUndefined TradeCondition = 10000

var tradeConditionNames = map[TradeCondition]string{
	0: "REGULAR", 1: "FORM_T", 2: "OUT_OF_SEQ", 3: "AVG_PRC", 4: "AVG_PRC_NASDAQ",
	5: "OPEN_REPORT_LATE", 6: "OPEN_REPORT_OUT_OF_SEQ", 7: "OPEN_REPORT_IN_SEQ",
	8: "PRIOR_REFERENCE_PRICE", 9: "NEXT_DAY_SALE", 10: "BUNCHED", 11: "CASH_SALE",
	12: "SELLER", 13: "SOLD_LAST", 14: "RULE_127", 15: "BUNCHED_SOLD", 16: "NON_BOARD_LOT",
	17: "POSIT", 18: "AUTO_EXECUTION", 19: "HALT", 20: "DELAYED", 21: "REOPEN",
	22: "ACQUISITION", 23: "CASH_MARKET", 24: "NEXT_DAY_MARKET", 25: "BURST_BASKET",
	26: "OPEN_DETAIL", 27: "INTRA_DETAIL", 28: "BASKET_ON_CLOSE", 29: "RULE_155",
	30: "DISTRIBUTION", 31: "SPLIT", 32: "RESERVED", 33: "CUSTOM_BASKET_CROSS",
	34: "ADJ_TERMS", 35: "SPREAD", 36: "STRADDLE", 37: "BUY_WRITE", 38: "COMBO",
	39: "STPD", 40: "CANC", 41: "CANC_LAST", 42: "CANC_OPEN", 43: "CANC_ONLY",
	44: "CANC_STPD", 45: "MATCH_CROSS", 46: "FAST_MARKET", 47: "NOMINAL", 48: "CABINET",
	49: "BLANK_PRICE", 50: "NOT_SPECIFIED", 51: "MC_OFFICIAL_CLOSE", 52: "SPECIAL_TERMS",
	53: "CONTINGENT_ORDER", 54: "INTERNAL_CROSS", 55: "STOPPED_REGULAR",
	56: "STOPPED_SOLD_LAST", 57: "STOPPED_OUT_OF_SEQ", 58: "BASIS", 59: "VWAP",
	60: "SPECIAL_SESSION", 61: "NANEX_ADMIN", 62: "OPEN_REPORT", 63: "MARKET_ON_CLOSE",
	64: "NOT_DEFINED", 65: "OUT_OF_SEQ_PRE_MKT", 66: "MC_OFFICIAL_OPEN", 67: "FUTURES_SPREAD",
	68: "OPEN_RANGE", 69: "CLOSE_RANGE", 70: "NOMINAL_CABINET", 71: "CHANGING_TRANS",
	72: "CHANGING_TRANS_CAB", 73: "NOMINAL_UPDATE", 74: "PIT_SETTLEMENT", 75: "BLOCK_TRADE",
	76: "EXG_FOR_PHYSICAL", 77: "VOLUME_ADJUSTMENT", 78: "VOLATILITY_TRADE", 79: "YELLOW_FLAG",
	80: "FLOOR_PRICE", 81: "OFFICIAL_PRICE", 82: "UNOFFICIAL_PRICE", 83: "MID_BID_ASK_PRICE",
	84: "END_SESSION_HIGH", 85: "END_SESSION_LOW", 86: "BACKWARDATION", 87: "CONTANGO",
	88: "HOLIDAY", 89: "PRE_OPENING", 90: "POST_FULL", 91: "POST_RESTRICTED",
	92: "CLOSING_AUCTION", 93: "BATCH", 94: "TRADING", 95: "INTERMARKET_SWEEP",
	96: "DERIVATIVE", 97: "REOPENING", 98: "CLOSING", 99: "CAP_ELECTION", 100: "SPOT_SETTLEMENT",
	101: "BASIS_HIGH", 102: "BASIS_LOW", 103: "YIELD", 104: "PRICE_VARIATION", 105: "STOCK_OPTION",
	106: "STOPPED_IM", 107: "BENCHMARK", 108: "TRADE_THRU_EXEMPT", 109: "IMPLIED", 110: "OTC",
	111: "MKT_SUPERVISION", 112: "RESERVED_77", 113: "RESERVED_91", 114: "CONTINGENT_UTP",
	115: "ODD_LOT", 116: "RESERVED_89", 117: "CORRECTED_LAST", 118: "OPRA_EXT_HOURS",
	119: "RESERVED_78", 120: "RESERVED_81", 121: "RESERVED_84", 122: "RESERVED_878",
	123: "RESERVED_90", 124: "QUALIFIED_CONTINGENT_TRADE", 125: "SINGLE_LEG_AUCTION_NON_ISO",
	126: "SINGLE_LEG_AUCTION_ISO", 127: "SINGLE_LEG_CROSS_NON_ISO", 128: "SINGLE_LEG_CROSS_ISO",
	129: "SINGLE_LEG_FLOOR_TRADE", 130: "MULTI_LEG_AUTO_ELECTRONIC_TRADE", 131: "MULTI_LEG_AUCTION",
	132: "MULTI_LEG_CROSS", 133: "MULTI_LEG_FLOOR_TRADE",
	134: "MULTI_LEG_AUTO_ELEC_TRADE_AGAINST_SINGLE_LEG", 135: "STOCK_OPTIONS_AUCTION",
	136: "MULTI_LEG_AUCTION_AGAINST_SINGLE_LEG", 137: "MULTI_LEG_FLOOR_TRADE_AGAINST_SINGLE_LEG",
	138: "STOCK_OPTIONS_AUTO_ELEC_TRADE", 139: "STOCK_OPTIONS_CROSS", 140: "STOCK_OPTIONS_FLOOR_TRADE",
	141: "STOCK_OPTIONS_AUTO_ELEC_TRADE_AGAINST_SINGLE_LEG", 142: "STOCK_OPTIONS_AUCTION_AGAINST_SINGLE_LEG",
	143: "STOCK_OPTIONS_FLOOR_TRADE_AGAINST_SINGLE_LEG", 144: "MULTI_LEG_FLOOR_TRADE_OF_PROPRIETARY_PRODUCTS",
	145: "BID_AGGRESSOR", 146: "ASK_AGGRESSOR",
	147: "MULTI_LATERAL_COMPRESSION_TRADE_OF_PROPRIETARY_DATA_PRODUCTS", 148: "EXTENDED_HOURS_TRADE",
	10000: "UNDEFINED",
}

func (t TradeCondition) String() string {
	if name, ok := tradeConditionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TradeCondition(%d)", int32(t))
}

// TradeConditionFromCode never errors: unknown codes degrade to UNDEFINED.
func TradeConditionFromCode(code int32) TradeCondition {
	if _, ok := tradeConditionNames[TradeCondition(code)]; ok {
		return TradeCondition(code)
	}
	return TradeConditionUndefined
}

// QuoteCondition classifies the market state a quote was produced under.
// Unknown codes degrade to QuoteConditionUndefined, matching TradeCondition.
type QuoteCondition int32

const QuoteConditionUndefined QuoteCondition = 10000

var quoteConditionNames = map[QuoteCondition]string{
	0: "REGULAR", 1: "BID_ASK_AUTO_EXEC", 2: "ROTATION", 3: "SPECIALIST_ASK",
	4: "SPECIALIST_BID", 5: "LOCKED", 6: "FAST_MARKET", 7: "SPECIALIST_BID_ASK",
	8: "ONE_SIDE", 9: "OPENING_QUOTE", 10: "CLOSING_QUOTE", 11: "MARKET_MAKER_CLOSED",
	12: "DEPTH_ON_ASK", 13: "DEPTH_ON_BID", 14: "DEPTH_ON_BID_ASK", 15: "TIER_3",
	16: "CROSSED", 17: "HALTED", 18: "OPERATIONAL_HALT", 19: "NEWS", 20: "NEWS_PENDING",
	21: "NON_FIRM", 22: "DUE_TO_RELATED", 23: "RESUME", 24: "NO_MARKET_MAKERS",
	25: "ORDER_IMBALANCE", 26: "ORDER_INFLUX", 27: "INDICATED", 28: "PRE_OPEN",
	29: "IN_VIEW_OF_COMMON", 30: "RELATED_NEWS_PENDING", 31: "RELATED_NEWS_OUT",
	32: "ADDITIONAL_INFO", 33: "RELATED_ADDL_INFO", 34: "NO_OPEN_RESUME", 35: "DELETED",
	36: "REGULATORY_HALT", 37: "SEC_SUSPENSION", 38: "NON_COMLIANCE", 39: "FILINGS_NOT_CURRENT",
	40: "CATS_HALTED", 41: "CATS", 42: "EX_DIV_OR_SPLIT", 43: "UNASSIGNED", 44: "INSIDE_OPEN",
	45: "INSIDE_CLOSED", 46: "OFFER_WANTED", 47: "BID_WANTED", 48: "CASH", 49: "INACTIVE",
	50: "NATIONAL_BBO", 51: "NOMINAL", 52: "CABINET", 53: "NOMINAL_CABINET", 54: "BLANK_PRICE",
	55: "SLOW_BID_ASK", 56: "SLOW_LIST", 57: "SLOW_BID", 58: "SLOW_ASK", 59: "BID_OFFER_WANTED",
	60: "SUB_PENNY", 61: "NON_BBO", 62: "TBA_62", 63: "TBA_63", 64: "TBA_64", 65: "TBA_65",
	66: "TBA_66", 67: "TBA_67", 68: "TBA_68", 69: "TBA_69",
	10000: "UNDEFINED",
}

func (q QuoteCondition) String() string {
	if name, ok := quoteConditionNames[q]; ok {
		return name
	}
	return fmt.Sprintf("QuoteCondition(%d)", int32(q))
}

// QuoteConditionFromCode never errors: unknown codes degrade to UNDEFINED.
func QuoteConditionFromCode(code int32) QuoteCondition {
	if _, ok := quoteConditionNames[QuoteCondition(code)]; ok {
		return QuoteCondition(code)
	}
	return QuoteConditionUndefined
}
