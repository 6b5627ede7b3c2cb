package types_test

import (
	"fmt"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipparser/internal/types"
)

func TestParseAddr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    types.Addr
		wantErr bool
	}{
		{"domain", "example.com", types.Host("example.com"), false},
		{"domain with port", "example.com:5060", types.HostPort("example.com", 5060), false},
		{"FQDN", "example.com.", types.Host("example.com."), false},
		{"IPv4", "192.0.2.1:5061", types.HostPort("192.0.2.1", 5061), false},
		{"IPv6", "[2001:db8::1]:5060", types.HostPort("[2001:db8::1]", 5060), false},
		{"trailing garbage", "example.com:5060;x", types.Addr{}, true},
		{"bad label", "-bad", types.Addr{}, true},
		{"port overflow", "example.com:99999999999", types.Addr{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := types.ParseAddr(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("types.ParseAddr(%q) error = %v, want error %v", c.in, err, c.wantErr)
			}
			if diff := cmp.Diff(got, c.want, cmp.AllowUnexported(types.Addr{})); diff != "" {
				t.Errorf("types.ParseAddr(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
		})
	}
}

func TestAddr_IP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		addr   types.Addr
		want   netip.Addr
		wantOk bool
	}{
		{"domain", types.Host("example.com"), netip.Addr{}, false},
		{"IPv4", types.HostPort("192.0.2.1", 5060), netip.MustParseAddr("192.0.2.1"), true},
		{"IPv4 out of range", types.Host("999.999.999.999"), netip.Addr{}, false},
		{"IPv6 reference", types.Host("[2001:db8::1]"), netip.MustParseAddr("2001:db8::1"), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, ok := c.addr.IP()
			if ok != c.wantOk || got != c.want {
				t.Errorf("addr.IP() = (%v, %v), want (%v, %v)", got, ok, c.want, c.wantOk)
			}
		})
	}
}

func TestAddr_Labels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		addr     types.Addr
		wantFQDN bool
		want     []string
	}{
		{"domain", types.Host("a.b.example.com"), false, []string{"a", "b", "example", "com"}},
		{"FQDN", types.Host("john."), true, []string{"john"}},
		{"IPv4", types.Host("192.0.2.1"), false, nil},
		{"IPv6", types.Host("[::1]"), false, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.addr.IsFQDN(); got != c.wantFQDN {
				t.Errorf("addr.IsFQDN() = %v, want %v", got, c.wantFQDN)
			}
			if diff := cmp.Diff(c.addr.Labels(), c.want); diff != "" {
				t.Errorf("addr.Labels() = %v, want %v\ndiff (-got +want):\n%v", c.addr.Labels(), c.want, diff)
			}
		})
	}
}

func TestAddr_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		addr types.Addr
		want string
	}{
		{"zero", types.Addr{}, ""},
		{"empty host with port", types.HostPort("", 5060), ":5060"},
		{"domain", types.Host("example.com"), "example.com"},
		{"domain with zero port", types.HostPort("example.com", 0), "example.com:0"},
		{"IPv6 with port", types.HostPort("[2001:db8::9:1]", 5060), "[2001:db8::9:1]:5060"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := c.addr.String(), c.want; got != want {
				t.Errorf("addr.String() = %q, want %q", got, want)
			}
			if got, want := fmt.Sprintf("%q", c.addr), fmt.Sprintf("%q", c.want); got != want {
				t.Errorf("fmt.Sprintf(%%q, addr) = %s, want %s", got, want)
			}
		})
	}

	if got, want := fmt.Sprintf("%+v", types.HostPort("example.com", 5060)),
		`types.Addr{host:"example.com", port:5060, hasPort:true}`; got != want {
		t.Errorf("fmt.Sprintf(%%+v, addr) = %s, want %s", got, want)
	}
}

func TestAddr_Equal(t *testing.T) {
	t.Parallel()

	addr := types.HostPort("192.0.2.128", 5060)
	cases := []struct {
		name string
		addr types.Addr
		val  any
		want bool
	}{
		{"nil", types.Addr{}, nil, false},
		{"zero", types.Addr{}, types.Addr{}, true},
		{"nil pointer", types.Addr{}, (*types.Addr)(nil), false},
		{"port missing", types.HostPort("example.com", 0), types.Host("example.com"), false},
		{"host case", types.HostPort("example.com", 5060), types.HostPort("EXAMPLE.COM", 5060), true},
		{"pointer", addr, &addr, true},
		{"other type", addr, addr.String(), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := c.addr.Equal(c.val), c.want; got != want {
				t.Errorf("addr.Equal(val) = %v, want %v", got, want)
			}
		})
	}
}

func TestAddr_IsValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		addr      types.Addr
		wantValid bool
		wantZero  bool
	}{
		{"zero", types.Addr{}, false, true},
		{"empty host", types.HostPort("", 5060), false, false},
		{"host only", types.Host("example.com"), true, false},
		{"bad host", types.Host("foo-"), false, false},
		{"IPv6", types.HostPort("[::1]", 5060), true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.addr.IsValid(); got != c.wantValid {
				t.Errorf("addr.IsValid() = %v, want %v", got, c.wantValid)
			}
			if got := c.addr.IsZero(); got != c.wantZero {
				t.Errorf("addr.IsZero() = %v, want %v", got, c.wantZero)
			}
			if got := types.IsValid(c.addr); got != c.wantValid {
				t.Errorf("types.IsValid(addr) = %v, want %v", got, c.wantValid)
			}
		})
	}
}
