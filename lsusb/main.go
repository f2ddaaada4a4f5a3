// lsusb lists attached USB devices, their interfaces and endpoints,
// annotated with vendor and product names from the usbid database.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/gousb/usbid"

	"github.com/peripheralhq/usbkit"
)

var debugLevel = flag.Int("debug", 0, "libusb debug level (0..3)")

func main() {
	flag.Parse()

	ctx := usbkit.NewContext()
	defer ctx.Close()
	ctx.Debug(*debugLevel)

	devs, err := ctx.ListDevices()
	defer func() {
		for _, d := range devs {
			d.Close()
		}
	}()
	if err != nil {
		log.Printf("list: %s", err)
	}

	for _, dev := range devs {
		desc := dev.Desc
		fmt.Printf("%03d:%03d %s:%s %s\n", desc.Bus, desc.Address, desc.Vendor, desc.Product, describe(desc))
		if name, err := dev.Name(); err == nil {
			fmt.Printf("  Reports as: %s\n", name)
		}
		for _, intf := range desc.Interfaces {
			fmt.Printf("  %s\n", intf)
			for _, ep := range intf.Endpoints {
				fmt.Printf("    %s\n", ep)
			}
		}
	}
}

// describe resolves human-readable vendor and product names from the
// usb.ids database shipped with gousb.
func describe(desc *usbkit.DeviceDesc) string {
	if v, ok := usbid.Vendors[desc.Vendor]; ok {
		if p, ok := v.Product[desc.Product]; ok {
			return fmt.Sprintf("%s (%s)", p, v)
		}
		return fmt.Sprintf("Unknown (%s)", v)
	}
	return fmt.Sprintf("Unknown %s:%s", desc.Vendor, desc.Product)
}
