// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package profiles

import ssb "github.com/ssbc/go-ssb-model"

// Names of the built-in profiles.
const (
	SSB       = "ssb"
	Verse     = "verse"
	TestNet   = "testnet"
	Planetary = "planetary"
)

// the capability of the main ssb network
const ssbNetworkKey = "1KHLiKZvAvjbY1ziZEHMXawbCEIM6qwjCDm3VYRan/s="

// Defaults returns a fresh copy of the built-in profiles.
func Defaults() Registry {
	return Registry{
		SSB: {
			Name:       SSB,
			NetworkKey: ssbNetworkKey,
			Pubs: map[string]ssb.Identity{
				"planetary-pub1": "@cgZaEEyNixAnq7tMH2CHdusBHV80OwqOSGIcc6Hr6aA=.ed25519",
				"planetary-pub2": "@ZOSbNTyKgIecMcSCPlOJt1veIAP1D8p5Ptao+8cRO6c=.ed25519",
				"planetary-pub3": "@oRMrLWs3AP0VwVw3AtBRL3TfOaxeTOFml33CibRtfcE=.ed25519",
				"planetary-pub4": "@9Vyi928zwolkNcyDSA6S3p+ycQ8GD87iSU//0dNc0pw=.ed25519",
				"planetary-pub5": "@7y2rK6OEQqE/brYIC9L6JVw4radEiEA2JK7C9nW9NEw=.ed25519",
				"planetary-pub6": "@EXvEWZDIhmWracjl/4St9AWR42/MGBAXMPPBVJ4hN5A=.ed25519",
			},
			People: map[string]ssb.Identity{
				"Current Events": "@wNmXqk80DL4FrBjzZcYqbKs/SpsPv6MVX6BLICabPfI=.ed25519",
				"Planetary":      "@oeNoy1RIArVdMdk8ndeoKbAKuU8b56VgxlYP5y8b9Ic=.ed25519",
			},
		},
		Verse: {
			Name: Verse,
			Pubs: map[string]ssb.Identity{
				"testpub_js": "@SwPgz6L0SN78lmv3GDaa2dIAJ0j91GiRI05G9H1w0ys=.ed25519",
				"testpub_go": "@BEN6tlUwG8UbiAjK/dtmkrLFNworYkRJBZuxNbc2x0I=.ed25519",
			},
			People: map[string]ssb.Identity{
				"christian":    "@uZsQmjnC5fjZCrRfH8ADSx9Kbx64Na5wvYoESS3VFqw=.ed25519",
				"henry":        "@VG+jsSyURWMocK+oMb8j9wzHV2rLfxxdEZcTJ+CxsOc=.ed25519",
				"rabble":       "@0uOwBrHIeiRK7lcvpLwjSFkcS3UHSQb/jyN52zf+J6Y=.ed25519",
				"rabble-patch": "@SwPgz6L0SN78lmv3GDaa2dIAJ0j91GiRI05G9H1w0ys=.ed25519",
				"Planetary":    "@oeNoy1RIArVdMdk8ndeoKbAKuU8b56VgxlYP5y8b9Ic=.ed25519",
			},
		},
		TestNet: {
			Name: TestNet,
			Pubs: map[string]ssb.Identity{
				"integrationpub1": "@AJ/1x0/G78jRNriBqgV+ucDe5IPgpEap/sV2PPs61LI=.ed25519",
			},
			People: map[string]ssb.Identity{},
		},
		Planetary: {
			Name: Planetary,
			Pubs: map[string]ssb.Identity{
				"testpub_go1": "@SVigTE9FieHqbHymVX080tR8DCpk5v5LmX4mnxKd7M0=.ggfeed-v1",
				"testpub_go2": "@pSF/XwM1choNE3sk60QO8jUk+a7n/6jJ5dJ/o9IeloE=.ggfeed-v1",
				"testpub_go3": "@R2COJoY/JwWUZMu0yv67kGDNCSBCXzvdL7dZ4sIhz/c=.ggfeed-v1",
				"testpub_go4": "@GotH+E4WwlWTdVDF9VmY2JOsuFfCavit5x+OyEz3HAQ=.ggfeed-v1",
			},
			People: map[string]ssb.Identity{
				"Planetary": "@1TBkfmdEjgLnjucHWaluBR31mFmkLp8/v+BgqMu4+9U=.ed25519",
				"Christian": "@2l7hLH0QYOr1xePsdKvCH2TlLk8crOf7VJCAaNbia7A=.ggfeed-v1",
				"henry":     "@u8DoI07mlGaqaqA29dcpMmIHoSxenHZpQUaZrU03WFM=.ggfeed-v1",
				"Rabble":    "@FJuMvefQLjBGZLaZSTEpRQ/6UwhqcqgjKgvKaurPYuc=.ggfeed-v1",
			},
		},
	}
}
