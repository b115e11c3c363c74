package apperr

// Code identifies a single validation or lookup failure. Codes are stable
// strings so API clients can switch on them.
type Code string

const (
	// Listing / read parameters.
	CodeInvalidReadParameter        Code = "InvalidReadParameter"
	CodeInvalidOffsetFormat         Code = "InvalidOffsetFormat"
	CodeNegativeOffset              Code = "NegativeOffset"
	CodeInvalidLimitFormat          Code = "InvalidLimitFormat"
	CodeNegativeLimit               Code = "NegativeLimit"
	CodeTooLargeLimit               Code = "TooLargeLimit"
	CodeInvalidCertificateSortParam Code = "InvalidCertificateSortParam"

	// Certificate fields.
	CodeInvalidCertificateName        Code = "InvalidCertificateName"
	CodeInvalidCertificateDescription Code = "InvalidCertificateDescription"
	CodeInvalidCertificatePrice       Code = "InvalidCertificatePrice"
	CodeInvalidCertificateDuration    Code = "InvalidCertificateDuration"
	CodeDuplicatedCertificateName     Code = "DuplicatedCertificateName"
	CodeInvalidCertificateID          Code = "InvalidCertificateId"
	CodeNoCertificateFound            Code = "NoCertificateFound"

	// Tags.
	CodeInvalidTag        Code = "InvalidTag"
	CodeInvalidTagName    Code = "InvalidTagName"
	CodeInvalidTagID      Code = "InvalidTagId"
	CodeDuplicatedTagName Code = "DuplicatedTagName"
	CodeNoTagFound        Code = "NoTagFound"

	// Users.
	CodeInvalidUserName     Code = "InvalidUserName"
	CodeInvalidUserPassword Code = "InvalidUserPassword"
	CodeDuplicatedUserName  Code = "DuplicatedUserName"
	CodeInvalidUserID       Code = "InvalidUserId"
	CodeNoUserFound         Code = "NoUserFound"

	// Orders.
	CodeNoOrderCertificatesFound            Code = "NoOrderCertificatesFound"
	CodeInvalidOrderCertificateAmount       Code = "InvalidOrderCertificateAmount"
	CodeInvalidOrderUniqueCertificatesAmount Code = "InvalidOrderUniqueCertificatesAmount"
	CodeInvalidOrderID                      Code = "InvalidOrderId"
	CodeNoOrderFound                        Code = "NoOrderFound"
)
