package enrichment

import (
	"math/rand/v2"
)

// UnknownLocation 无法定位时的标签
const UnknownLocation = "Unknown"

// Locator 根据 IP 推导位置标签
type Locator interface {
	Locate(ip string) string
}

var stubLocations = []string{
	"New York, US",
	"London, UK",
	"Tokyo, JP",
	"Mumbai, IN",
	"Sydney, AU",
}

// StubLocator 占位实现：不做任何地理定位，
// 从固定列表中随机返回一个标签，与传入的地址无关。
// 需要真实位置时配置 geo.database 使用 GeoIPLocator。
type StubLocator struct{}

func (StubLocator) Locate(string) string {
	return stubLocations[rand.IntN(len(stubLocations))]
}

// StubLocations 返回占位实现可能产生的全部标签
func StubLocations() []string {
	out := make([]string, len(stubLocations))
	copy(out, stubLocations)
	return out
}
