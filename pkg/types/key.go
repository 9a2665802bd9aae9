package types

import "fmt"

// Key identifies a TOC entry. Keys with the high bit set are custom keys whose
// name lives in a string record at Key.CustomOffset().
type Key uint32

// CustomKeyFlag marks a custom key.
const CustomKeyFlag Key = 0x80000000

// Well-known standard keys.
const (
	KeyTargetPath            Key = 0x1004 // array of path component strings
	KeyTargetCNIDPath        Key = 0x1005 // array of catalog node ids
	KeyTargetFlags           Key = 0x1010 // resource property flags (3 x u64)
	KeyTargetFilename        Key = 0x1020
	KeyTargetFileID          Key = 0x1030
	KeyTargetCreationDate    Key = 0x1040
	KeyVolumePath            Key = 0x2002
	KeyVolumeURL             Key = 0x2005
	KeyVolumeName            Key = 0x2010
	KeyVolumeUUID            Key = 0x2011
	KeyVolumeSize            Key = 0x2012
	KeyVolumeCreationDate    Key = 0x2013
	KeyVolumeFlags           Key = 0x2020 // volume property flags (3 x u64)
	KeyVolumeIsRoot          Key = 0x2030
	KeyVolumeBookmark        Key = 0x2040
	KeyVolumeMountPoint      Key = 0x2050
	KeyContainingFolderIndex Key = 0xC001
	KeyCreatorUsername       Key = 0xC011
	KeyCreatorUID            Key = 0xC012
	KeyFileReferenceFlag     Key = 0xD001
	KeyCreationOptions       Key = 0xD010
	KeyURLLengths            Key = 0xE003
	KeyLocalizedName         Key = 0xF017
	KeyTypeBindingData       Key = 0xF022
	KeySecurityExtensionRW   Key = 0xF080
	KeySecurityExtensionRO   Key = 0xF081
)

var keyNames = map[Key]string{
	KeyTargetPath:            "TargetPath",
	KeyTargetCNIDPath:        "TargetCNIDPath",
	KeyTargetFlags:           "TargetFlags",
	KeyTargetFilename:        "TargetFilename",
	KeyTargetFileID:          "TargetFileID",
	KeyTargetCreationDate:    "TargetCreationDate",
	KeyVolumePath:            "VolumePath",
	KeyVolumeURL:             "VolumeURL",
	KeyVolumeName:            "VolumeName",
	KeyVolumeUUID:            "VolumeUUID",
	KeyVolumeSize:            "VolumeSize",
	KeyVolumeCreationDate:    "VolumeCreationDate",
	KeyVolumeFlags:           "VolumeFlags",
	KeyVolumeIsRoot:          "VolumeIsRoot",
	KeyVolumeBookmark:        "VolumeBookmark",
	KeyVolumeMountPoint:      "VolumeMountPoint",
	KeyContainingFolderIndex: "ContainingFolderIndex",
	KeyCreatorUsername:       "CreatorUsername",
	KeyCreatorUID:            "CreatorUID",
	KeyFileReferenceFlag:     "FileReferenceFlag",
	KeyCreationOptions:       "CreationOptions",
	KeyURLLengths:            "URLLengths",
	KeyLocalizedName:         "LocalizedName",
	KeyTypeBindingData:       "TypeBindingData",
	KeySecurityExtensionRW:   "SecurityExtensionRW",
	KeySecurityExtensionRO:   "SecurityExtensionRO",
}

// IsCustom reports whether k is in the custom key space.
func (k Key) IsCustom() bool { return k&CustomKeyFlag != 0 }

// CustomOffset returns the data-section offset of the custom key's name record.
func (k Key) CustomOffset() uint32 { return uint32(k &^ CustomKeyFlag) }

// Known reports whether k is one of the well-known standard keys.
func (k Key) Known() bool {
	_, ok := keyNames[k]
	return ok
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k.IsCustom() {
		return fmt.Sprintf("Custom(0x%x)", k.CustomOffset())
	}
	return fmt.Sprintf("Key(0x%04x)", uint32(k))
}
