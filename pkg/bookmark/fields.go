package bookmark

import (
	"time"

	"github.com/google/uuid"

	"github.com/joshuapare/bookmarkkit/internal/buf"
	"github.com/joshuapare/bookmarkkit/pkg/types"
)

// Well-known keys, re-exported from pkg/types.
const (
	KeyTargetPath            = types.KeyTargetPath
	KeyTargetCNIDPath        = types.KeyTargetCNIDPath
	KeyTargetFlags           = types.KeyTargetFlags
	KeyTargetFilename        = types.KeyTargetFilename
	KeyTargetFileID          = types.KeyTargetFileID
	KeyTargetCreationDate    = types.KeyTargetCreationDate
	KeyVolumePath            = types.KeyVolumePath
	KeyVolumeURL             = types.KeyVolumeURL
	KeyVolumeName            = types.KeyVolumeName
	KeyVolumeUUID            = types.KeyVolumeUUID
	KeyVolumeSize            = types.KeyVolumeSize
	KeyVolumeCreationDate    = types.KeyVolumeCreationDate
	KeyVolumeFlags           = types.KeyVolumeFlags
	KeyVolumeIsRoot          = types.KeyVolumeIsRoot
	KeyVolumeBookmark        = types.KeyVolumeBookmark
	KeyVolumeMountPoint      = types.KeyVolumeMountPoint
	KeyContainingFolderIndex = types.KeyContainingFolderIndex
	KeyCreatorUsername       = types.KeyCreatorUsername
	KeyCreatorUID            = types.KeyCreatorUID
	KeyFileReferenceFlag     = types.KeyFileReferenceFlag
	KeyCreationOptions       = types.KeyCreationOptions
	KeyURLLengths            = types.KeyURLLengths
	KeyLocalizedName         = types.KeyLocalizedName
	KeyTypeBindingData       = types.KeyTypeBindingData
	KeySecurityExtensionRW   = types.KeySecurityExtensionRW
	KeySecurityExtensionRO   = types.KeySecurityExtensionRO
)

// Resource property bits of ResourceFlags for a target.
const (
	ResourceIsRegularFile         uint64 = 0x00000001
	ResourceIsDirectory           uint64 = 0x00000002
	ResourceIsSymbolicLink        uint64 = 0x00000004
	ResourceIsVolume              uint64 = 0x00000008
	ResourceIsPackage             uint64 = 0x00000010
	ResourceIsSystemImmutable     uint64 = 0x00000020
	ResourceIsUserImmutable       uint64 = 0x00000040
	ResourceIsHidden              uint64 = 0x00000080
	ResourceHasHiddenExtension    uint64 = 0x00000100
	ResourceIsApplication         uint64 = 0x00000200
	ResourceIsCompressed          uint64 = 0x00000400
	ResourceCanSetHiddenExtension uint64 = 0x00000800
	ResourceIsReadable            uint64 = 0x00001000
	ResourceIsWriteable           uint64 = 0x00002000
	ResourceIsExecutable          uint64 = 0x00004000
	ResourceIsAliasFile           uint64 = 0x00008000
	ResourceIsMountTrigger        uint64 = 0x00010000
)

// Volume property bits of ResourceFlags for a volume.
const (
	VolumeIsLocal               uint64 = 0x00000001
	VolumeIsAutomount           uint64 = 0x00000002
	VolumeDontBrowse            uint64 = 0x00000004
	VolumeIsReadOnly            uint64 = 0x00000008
	VolumeIsQuarantined         uint64 = 0x00000010
	VolumeIsEjectable           uint64 = 0x00000020
	VolumeIsRemovable           uint64 = 0x00000040
	VolumeIsInternal            uint64 = 0x00000080
	VolumeIsExternal            uint64 = 0x00000100
	VolumeIsDiskImage           uint64 = 0x00000200
	VolumeSupportsPersistentIDs uint64 = 0x100000000
)

// ResourceFlags is a property flag triple: the flag values, the mask of
// flags that are meaningful, and a reserved word.
type ResourceFlags struct {
	Flags    uint64
	Valid    uint64
	Reserved uint64
}

// Has reports whether bit is valid and set.
func (f ResourceFlags) Has(bit uint64) bool {
	return f.Valid&bit == bit && f.Flags&bit == bit
}

// Words returns the raw triple.
func (f ResourceFlags) Words() []uint64 { return []uint64{f.Flags, f.Valid, f.Reserved} }

// fieldCheck reports whether a value has the type its well-known key expects.
type fieldCheck func(Value) bool

var wellKnown = map[Key]fieldCheck{
	KeyTargetPath:            isStringArray,
	KeyTargetCNIDPath:        isUintArray,
	KeyTargetFlags:           isFlags,
	KeyTargetFilename:        isString,
	KeyTargetFileID:          isInt,
	KeyTargetCreationDate:    isDate,
	KeyVolumePath:            isString,
	KeyVolumeURL:             isURLOrString,
	KeyVolumeName:            isString,
	KeyVolumeUUID:            isUUID,
	KeyVolumeSize:            isInt,
	KeyVolumeCreationDate:    isDate,
	KeyVolumeFlags:           isFlags,
	KeyVolumeIsRoot:          isBool,
	KeyVolumeMountPoint:      isURLOrString,
	KeyContainingFolderIndex: isInt,
	KeyCreatorUsername:       isString,
	KeyCreatorUID:            isInt,
	KeyFileReferenceFlag:     isBool,
	KeyCreationOptions:       isInt,
	KeyLocalizedName:         isString,
	KeySecurityExtensionRW:   isDataOrString,
	KeySecurityExtensionRO:   isDataOrString,
}

func isString(v Value) bool { return v.Kind() == types.KindString }
func isInt(v Value) bool    { return v.Kind() == types.KindInt }
func isBool(v Value) bool   { return v.Kind() == types.KindBool }

func isDate(v Value) bool {
	_, ok := v.AsTime()
	return ok
}

func isURLOrString(v Value) bool {
	return v.Kind() == types.KindURL || v.Kind() == types.KindString
}

func isDataOrString(v Value) bool {
	return v.Kind() == types.KindData || v.Kind() == types.KindString
}

func isStringArray(v Value) bool {
	elems, ok := v.Array()
	if !ok {
		return false
	}
	for _, e := range elems {
		if !isString(e) {
			return false
		}
	}
	return true
}

func isUintArray(v Value) bool {
	elems, ok := v.Array()
	if !ok {
		return false
	}
	for _, e := range elems {
		if _, ok := e.AsUint(); !ok {
			return false
		}
	}
	return true
}

func isFlags(v Value) bool {
	p, ok := v.AsBytes()
	return ok && v.Kind() == types.KindData && len(p) >= 8
}

func isUUID(v Value) bool {
	_, ok := asUUID(v)
	return ok
}

// asUUID accepts binary UUID records and the string form real bookmarks use.
func asUUID(v Value) (uuid.UUID, bool) {
	if id, ok := v.AsUUID(); ok {
		return id, true
	}
	if v.Kind() != types.KindString {
		return uuid.Nil, false
	}
	s, _ := v.AsString()
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func asFlags(v Value) ResourceFlags {
	p, _ := v.AsBytes()
	var w [3]uint64
	for i := range w {
		if len(p) >= (i+1)*8 {
			w[i] = buf.U64LE(p[i*8:])
		}
	}
	return ResourceFlags{Flags: w[0], Valid: w[1], Reserved: w[2]}
}

func (b *Bookmark) field(k Key) (Value, bool) {
	v, ok := b.named[k]
	return v, ok
}

func (b *Bookmark) str(k Key) (string, bool) {
	v, ok := b.field(k)
	if !ok {
		return "", false
	}
	s, _ := v.AsString()
	return b.text(s), true
}

func (b *Bookmark) integer(k Key) (int64, bool) {
	v, ok := b.field(k)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

func (b *Bookmark) date(k Key) (time.Time, bool) {
	v, ok := b.field(k)
	if !ok {
		return time.Time{}, false
	}
	return v.AsTime()
}

func (b *Bookmark) blob(k Key) ([]byte, bool) {
	v, ok := b.field(k)
	if !ok {
		return nil, false
	}
	if s, ok := v.AsString(); ok {
		return []byte(s), true
	}
	return v.AsBytes()
}

// PathComponents returns the target path components, outermost first.
func (b *Bookmark) PathComponents() ([]string, bool) {
	v, ok := b.field(KeyTargetPath)
	if !ok {
		return nil, false
	}
	elems, _ := v.Array()
	parts := make([]string, len(elems))
	for i, e := range elems {
		s, _ := e.AsString()
		parts[i] = b.text(s)
	}
	return parts, true
}

// CNIDPath returns the catalog node ids of each path component.
func (b *Bookmark) CNIDPath() ([]uint64, bool) {
	v, ok := b.field(KeyTargetCNIDPath)
	if !ok {
		return nil, false
	}
	elems, _ := v.Array()
	ids := make([]uint64, len(elems))
	for i, e := range elems {
		ids[i], _ = e.AsUint()
	}
	return ids, true
}

// TargetFlags returns the first word of the target resource flags.
func (b *Bookmark) TargetFlags() (uint64, bool) {
	f, ok := b.TargetResourceFlags()
	return f.Flags, ok
}

// TargetResourceFlags returns the full target resource flag triple.
func (b *Bookmark) TargetResourceFlags() (ResourceFlags, bool) {
	v, ok := b.field(KeyTargetFlags)
	if !ok {
		return ResourceFlags{}, false
	}
	return asFlags(v), true
}

// FileName returns the target file name.
func (b *Bookmark) FileName() (string, bool) { return b.str(KeyTargetFilename) }

// FileID returns the target file id.
func (b *Bookmark) FileID() (int64, bool) { return b.integer(KeyTargetFileID) }

// CreationDate returns the target creation date.
func (b *Bookmark) CreationDate() (time.Time, bool) { return b.date(KeyTargetCreationDate) }

// VolumePath returns the mount path of the target volume.
func (b *Bookmark) VolumePath() (string, bool) { return b.str(KeyVolumePath) }

// VolumeURL returns the URL of the target volume.
func (b *Bookmark) VolumeURL() (string, bool) { return b.str(KeyVolumeURL) }

// VolumeName returns the name of the target volume.
func (b *Bookmark) VolumeName() (string, bool) { return b.str(KeyVolumeName) }

// VolumeUUID returns the UUID of the target volume.
func (b *Bookmark) VolumeUUID() (uuid.UUID, bool) {
	v, ok := b.field(KeyVolumeUUID)
	if !ok {
		return uuid.Nil, false
	}
	return asUUID(v)
}

// VolumeSize returns the capacity of the target volume in bytes.
func (b *Bookmark) VolumeSize() (int64, bool) { return b.integer(KeyVolumeSize) }

// VolumeCreationDate returns the creation date of the target volume.
func (b *Bookmark) VolumeCreationDate() (time.Time, bool) { return b.date(KeyVolumeCreationDate) }

// VolumeFlags returns the volume property flag triple.
func (b *Bookmark) VolumeFlags() (ResourceFlags, bool) {
	v, ok := b.field(KeyVolumeFlags)
	if !ok {
		return ResourceFlags{}, false
	}
	return asFlags(v), true
}

// VolumeIsRoot reports whether the target volume is the boot volume.
func (b *Bookmark) VolumeIsRoot() (bool, bool) {
	v, ok := b.field(KeyVolumeIsRoot)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// VolumeMountPoint returns the mount point URL of the target volume.
func (b *Bookmark) VolumeMountPoint() (string, bool) { return b.str(KeyVolumeMountPoint) }

// ContainingFolderIndex returns the index into PathComponents of the folder
// containing the target.
func (b *Bookmark) ContainingFolderIndex() (int64, bool) {
	return b.integer(KeyContainingFolderIndex)
}

// Username returns the name of the user that created the bookmark.
func (b *Bookmark) Username() (string, bool) { return b.str(KeyCreatorUsername) }

// UID returns the uid of the user that created the bookmark.
func (b *Bookmark) UID() (int64, bool) { return b.integer(KeyCreatorUID) }

// WasFileReference reports whether the bookmark was created from a file
// reference URL.
func (b *Bookmark) WasFileReference() (bool, bool) {
	v, ok := b.field(KeyFileReferenceFlag)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// CreationOptions returns the options the bookmark was created with.
func (b *Bookmark) CreationOptions() (int64, bool) { return b.integer(KeyCreationOptions) }

// LocalizedName returns the localized display name of the target.
func (b *Bookmark) LocalizedName() (string, bool) { return b.str(KeyLocalizedName) }

// SecurityExtensionRW returns the read-write sandbox extension.
func (b *Bookmark) SecurityExtensionRW() ([]byte, bool) { return b.blob(KeySecurityExtensionRW) }

// SecurityExtensionRO returns the read-only sandbox extension.
func (b *Bookmark) SecurityExtensionRO() ([]byte, bool) { return b.blob(KeySecurityExtensionRO) }
