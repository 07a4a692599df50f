package enrichment

import (
	"net"

	geoip2 "github.com/oschwald/geoip2-golang"
)

// GeoIPLocator 使用 MaxMind GeoIP2/GeoLite2 City 数据库定位
type GeoIPLocator struct {
	db *geoip2.Reader
}

// NewGeoIPLocator 打开数据库文件，文件不存在或损坏时返回错误
func NewGeoIPLocator(dbPath string) (*GeoIPLocator, error) {
	db, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &GeoIPLocator{db: db}, nil
}

func (g *GeoIPLocator) Close() error {
	return g.db.Close()
}

// Locate 返回 "城市, 国家代码"；私有地址、非法地址和查询失败返回 Unknown
func (g *GeoIPLocator) Locate(ipStr string) string {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return UnknownLocation
	}

	record, err := g.db.City(ip)
	if err != nil {
		return UnknownLocation
	}

	return formatLocation(record.City.Names["en"], record.Country.IsoCode)
}

func formatLocation(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case country != "":
		return country
	case city != "":
		return city
	default:
		return UnknownLocation
	}
}
