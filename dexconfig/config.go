// Package dexconfig holds the fixed on-chain addresses of every supported exchange
// and a TTL cache that keeps a fresh copy of them.
package dexconfig

type (
	// Dex is the part of the configuration every exchange has.
	Dex struct {
		Name    string `json:"name"`
		Package string `json:"package"`         // Package is the on-chain package id the swap calls target.
		URL     string `json:"url,omitempty"`   // URL is the exchange home page. It is optional.
		Image   string `json:"image,omitempty"` // Image is the exchange logo url. It is optional.
	}

	Aftermath struct {
		Dex
		PoolRegistry     string `json:"poolRegistry"`
		ProtocolFeeVault string `json:"protocolFeeVault"`
		Treasury         string `json:"treasury"`
		InsuranceFund    string `json:"insuranceFund"`
		ReferralVault    string `json:"referralVault"`
	}

	Bluefin struct {
		Dex
		GlobalConfig string `json:"globalConfig"`
	}

	Bluemove struct {
		Dex
		DexInfo string `json:"dexInfo"`
	}

	Cetus struct {
		Dex
		GlobalConfig string `json:"globalConfig"`
	}

	DeepbookV3 struct {
		Dex
		Sponsor     string `json:"sponsor"`     // Sponsor is the package of the sponsored swap wrapper.
		SponsorFund string `json:"sponsorFund"` // SponsorFund is the shared object paying the DEEP fees.
	}

	Flowx struct {
		Dex
		Container string `json:"container"`
	}

	FlowxV3 struct {
		Dex
		Registry string `json:"registry"`
		Version  string `json:"version"`
	}

	KriyaV3 struct {
		Dex
		Version string `json:"version"`
	}

	Obric struct {
		Dex
		PythState string `json:"pythState"`
	}

	Turbos struct {
		Dex
		Version string `json:"version"`
	}

	// Config is the full exchange configuration snapshot.
	Config struct {
		Aftermath  Aftermath  `json:"aftermath"`
		Bluefin    Bluefin    `json:"bluefin"`
		Bluemove   Bluemove   `json:"bluemove"`
		Cetus      Cetus      `json:"cetus"`
		Deepbook   Dex        `json:"deepbook"`
		DeepbookV3 DeepbookV3 `json:"deepbook_v3"`
		Flowx      Flowx      `json:"flowx"`
		FlowxV3    FlowxV3    `json:"flowx_v3"`
		Kriya      Dex        `json:"kriya"`
		KriyaV3    KriyaV3    `json:"kriya_v3"`
		Obric      Obric      `json:"obric"`
		Springsui  Dex        `json:"springsui"`
		Stsui      Dex        `json:"stsui"`
		Suiswap    Dex        `json:"suiswap"`
		Turbos     Turbos     `json:"turbos"`
	}
)

// Default returns the built-in configuration snapshot.
// It is used whenever the remote configuration can't be fetched.
func Default() Config {
	return Config{
		Aftermath: Aftermath{
			Dex:              Dex{Name: "Aftermath", Package: "0xc4049b2d1cc0f6e017fda8260e4377cecd236bd7f56a54fee120816e72e2e0dd"},
			PoolRegistry:     "0xfcc774493db2c45c79f688f88d28023a3e7d98e4ee9f48bbf5c7990f651577ae",
			ProtocolFeeVault: "0xf194d9b1bcad972e45a7dd67dd49b3ee1e3357a00a50850c52cd51bb450e13b4",
			Treasury:         "0x28e499dff5e864a2eafe476269a4f5035f1c16f338da7be18b103499abf271ce",
			InsuranceFund:    "0xf0c40d67b078000e18032334c3325c47b9ec9f3d9ae4128be820d54663d14e3b",
			ReferralVault:    "0x35d35b0e5b177593d8c3a801462485572fc30861e6ce96a55af6dc4730709278",
		},
		Bluefin: Bluefin{
			Dex:          Dex{Name: "Bluefin", Package: "0x6c796c3ab3421a68158e0df18e4657b2827b1f8fed5ed4b82dba9c935988711b"},
			GlobalConfig: "0x03db251ba509a8d5d8777b6338836082335d93eecbdd09a11e190a1cff51c352",
		},
		Bluemove: Bluemove{
			Dex:     Dex{Name: "Bluemove", Package: "0x08cd33481587d4c4612865b164796d937df13747d8c763b8a178c87e3244498f"},
			DexInfo: "0x3f2d9f724f4a1ce5e71676448dc452be9a6243dac9c5b975a588c8c867066e92",
		},
		Cetus: Cetus{
			Dex:          Dex{Name: "Cetus", Package: "0x6f5e582ede61fe5395b50c4a449ec11479a54d7ff8e0158247adfda60d98970b"},
			GlobalConfig: "0xdaa46292632c3c4d8f31f23ea0f9b36a28ff3677e9684980e4438403a67a3d8f",
		},
		Deepbook: Dex{Name: "Deepbook", Package: "0xdee9"},
		DeepbookV3: DeepbookV3{
			Dex:         Dex{Name: "Deepbook V3"},
			Sponsor:     "0x951a01360d85b06722edf896852bf8005b81cdb26375235c935138987f629502",
			SponsorFund: "0xf245e7a4b83ed9a26622f5818a158c2ba7a03b91e62717b557a7df1d4dab38df",
		},
		Flowx: Flowx{
			Dex:       Dex{Name: "Flowx Finance", Package: "0xba153169476e8c3114962261d1edc70de5ad9781b83cc617ecc8c1923191cae0"},
			Container: "0xb65dcbf63fd3ad5d0ebfbf334780dc9f785eff38a4459e37ab08fa79576ee511",
		},
		FlowxV3: FlowxV3{
			Dex:      Dex{Name: "Flowx Finance V3", Package: "0x25929e7f29e0a30eb4e692952ba1b5b65a3a4d65ab5f2a32e1ba3edcb587f26d"},
			Registry: "0x27565d24a4cd51127ac90e4074a841bbe356cca7bf5759ddc14a975be1632abc",
			Version:  "0x67624a1533b5aff5d0dfcf5e598684350efd38134d2d245f475524c03a64e656",
		},
		Kriya: Dex{Name: "Kriya", Package: "0xa0eba10b173538c8fecca1dff298e488402cc9ff374f8a12ca7758eebe830b66"},
		KriyaV3: KriyaV3{
			Dex:     Dex{Name: "Kriya V3", Package: "0xbd8d4489782042c6fafad4de4bc6a5e0b84a43c6c00647ffd7062d1e2bb7549e"},
			Version: "0xf5145a7ac345ca8736cf8c76047d00d6d378f30e81be6f6eb557184d9de93c78",
		},
		Obric: Obric{
			Dex:       Dex{Name: "Obric", Package: "0xb84e63d22ea4822a0a333c250e790f69bf5c2ef0c63f4e120e05a6415991368f"},
			PythState: "0x1f9310238ee9298fb703c3419030b35b22bb1cc37113e3bb5007c99aec79e5b8",
		},
		Springsui: Dex{Name: "SpringSui", Package: "0x82e6f4f75441eae97d2d5850f41a09d28c7b64a05b067d37748d471f43aaf3f7"},
		Stsui:     Dex{Name: "AlphaFi stSUI", Package: "0x059f94b85c07eb74d2847f8255d8cc0a67c9a8dcc039eabf9f8b9e23a0de2700"},
		Suiswap:   Dex{Name: "SuiSwap", Package: "0xd075d51486df71e750872b4edf82ea3409fda397ceecc0b6aedf573d923c54a0"},
		Turbos: Turbos{
			Dex:     Dex{Name: "Turbos Finance", Package: "0x1a3c42ded7b75cdf4ebc7c7b7da9d1e1db49f16fcdca934fac003f35f39ecad9"},
			Version: "0xf1cf0e81048df168ebeb1b8030fad24b3e0b53ae827c25053fff0779c1445b6f",
		},
	}
}
