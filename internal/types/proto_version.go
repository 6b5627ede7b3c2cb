package types

import "strconv"

// ProtoVersion is a SIP protocol version.
type ProtoVersion struct {
	Major, Minor int32
}

// Version20 is SIP/2.0.
var Version20 = ProtoVersion{Major: 2, Minor: 0}

// IsTwo reports whether the version is SIP/2.0.
func (v ProtoVersion) IsTwo() bool { return v == Version20 }

func (v ProtoVersion) String() string {
	return "SIP/" + strconv.FormatInt(int64(v.Major), 10) + "." + strconv.FormatInt(int64(v.Minor), 10)
}
